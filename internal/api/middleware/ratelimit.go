package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"

	"github.com/m04kA/SMC-SalonBookingService/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"

	authenticatedKeyPrefix = "user:"
)

// GuestRateLimit ограничивает частоту запросов гостей по IP.
// Авторизованные запросы не ограничиваются, поэтому OptionalAuth должен стоять раньше
func GuestRateLimit(store limiter.Store, rate string, logger Logger) (func(http.Handler) http.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", rate, err)
	}

	instance := limiter.New(store, parsed)

	return func(next http.Handler) http.Handler {
		mw := stdlib.NewMiddleware(instance,
			stdlib.WithKeyGetter(func(r *http.Request) string {
				if identity := IdentityFromContext(r.Context()); identity != nil {
					return authenticatedKeyPrefix + strconv.FormatInt(identity.ID, 10)
				}
				return instance.GetIPKey(r)
			}),
			stdlib.WithExcludedKey(func(key string) bool {
				return strings.HasPrefix(key, authenticatedKeyPrefix)
			}),
			stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
				logger.Warn("%s %s - rate limit reached for %s", r.Method, r.URL.Path, instance.GetIPKey(r))
				handlers.RespondTooManyRequests(w, msgTooManyRequests)
			}),
			stdlib.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				// хранилище лимитов недоступно: пропускаем запрос
				logger.Error("%s %s - rate limiter store error: %v", r.Method, r.URL.Path, err)
				next.ServeHTTP(w, r)
			}),
		)
		return mw.Handler(next)
	}, nil
}
