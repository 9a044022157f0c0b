package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware считает запросы и длительность по шаблону маршрута
func MetricsMiddleware(recorder HTTPRecorder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			recorder.ObserveHTTPRequest(r.Method, routeTemplate(r), rec.status, time.Since(start))
		})
	}
}

// routeTemplate возвращает шаблон пути, чтобы не плодить метки по id
func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
