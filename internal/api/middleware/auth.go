package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
)

const (
	msgTokenRequired = "требуется токен авторизации"
	msgTokenInvalid  = "недействительный или просроченный токен"
	msgAdminOnly     = "доступно только администратору"

	bearerPrefix = "Bearer "
)

// ErrInvalidToken возвращается для неподписанных, просроченных или неполных токенов
var ErrInvalidToken = errors.New("middleware: invalid token")

type identityKey struct{}

// Claims полезная нагрузка токена
type Claims struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

// Authenticator проверяет HS256 токены из заголовка Authorization
type Authenticator struct {
	secret []byte
	logger Logger
}

func NewAuthenticator(secret string, logger Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		logger: logger,
	}
}

// SignToken выпускает токен для идентичности
func (a *Authenticator) SignToken(identity domain.Identity, ttl time.Duration) (string, error) {
	claims := Claims{
		ID:       identity.ID,
		Email:    identity.Email,
		UserType: identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse проверяет подпись и срок действия токена
func (a *Authenticator) Parse(tokenStr string) (*domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == 0 && claims.Email == "" {
		return nil, fmt.Errorf("%w: no id or email claim", ErrInvalidToken)
	}

	return &domain.Identity{
		ID:    claims.ID,
		Email: claims.Email,
		Role:  claims.UserType,
	}, nil
}

// OptionalAuth кладёт идентичность в контекст, если токен валиден. Невалидный токен игнорируется
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := a.Parse(tokenStr)
		if err != nil {
			a.logger.Warn("%s %s - ignoring invalid token: %v", r.Method, r.URL.Path, err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireAuth отклоняет запросы без валидного токена
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearerToken(r)
		if tokenStr == "" {
			handlers.RespondUnauthorized(w, msgTokenRequired)
			return
		}

		identity, err := a.Parse(tokenStr)
		if err != nil {
			a.logger.Warn("%s %s - token rejected: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgTokenInvalid)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireAdmin пропускает только администраторов
func (a *Authenticator) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if !identity.IsAdmin() {
			a.logger.Warn("%s %s - admin role required, user=%d", r.Method, r.URL.Path, identity.ID)
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// WithIdentity возвращает контекст с идентичностью
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext возвращает идентичность или nil для гостя
func IdentityFromContext(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return identity
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
