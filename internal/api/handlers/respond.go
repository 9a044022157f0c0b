package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	msgInternalError    = "внутренняя ошибка сервера"
	msgNotFound         = "ресурс не найден"
	msgMethodNotAllowed = "метод не поддерживается"
	msgValidationError  = "ошибка валидации"

	maxBodyBytes = 1 << 20
)

// ErrEmptyBody возвращается, когда тело запроса пустое
var ErrEmptyBody = errors.New("request body is empty")

// ErrorResponse единый формат ошибки API
type ErrorResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// MessageResponse ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку с сообщением
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondValidationError отправляет 400 с ошибками по полям
func RespondValidationError(w http.ResponseWriter, message string, fields map[string]string) {
	if message == "" {
		message = msgValidationError
	}
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
		Fields:  fields,
	})
}

// RespondFieldError отправляет 400 с ошибкой одного поля
func RespondFieldError(w http.ResponseWriter, field, reason string) {
	RespondValidationError(w, msgValidationError, map[string]string{field: reason})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

// RespondInternalError скрывает детали ошибки от клиента
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondMessage отправляет 200 {message}
func RespondMessage(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusOK, MessageResponse{Message: message})
}

// DecodeJSON декодирует тело запроса в v
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	defer r.Body.Close()

	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return ErrEmptyBody
	}
	return err
}

// NotFoundHandler JSON 404 для неизвестных маршрутов
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondNotFound(w, msgNotFound)
	})
}

// MethodNotAllowedHandler JSON 405
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		RespondError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})
}
