package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetUser получает пользователя по ID
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &user, nil
}

// GetUserEmailWithGracefulDegradation получает email пользователя.
// ErrUserNotFound и ErrEmailMissing возвращаются как есть, любые другие ошибки
// превращаются в ErrServiceDegraded: бронирование продолжится с гостевым email
func (c *Client) GetUserEmailWithGracefulDegradation(ctx context.Context, userID int64) (string, error) {
	c.log.Info("Fetching email for user_id=%d", userID)

	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Warn("User not found in UserService: user_id=%d", userID)
			return "", err
		}

		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return "", fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	if strings.TrimSpace(user.Email) == "" {
		c.log.Warn("User has no email: user_id=%d", userID)
		return "", ErrEmailMissing
	}

	c.log.Info("Successfully fetched email for user_id=%d", userID)
	return user.Email, nil
}
