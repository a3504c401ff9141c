package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/avolkov/PRS-VisitService/pkg/metrics"
)

// statusRecorder перехватывает статус ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware записывает метрики HTTP запросов: счетчик и длительность
// В качестве endpoint использует шаблон роута, а не конкретный путь -
// иначе кардинальность метрик растет с каждым уникальным ID в URL
func MetricsMiddleware(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			endpoint := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					endpoint = template
				}
			}

			m.ObserveHTTPRequest(r.Method, endpoint, recorder.status, time.Since(start).Seconds())
		})
	}
}
