package metrics

import (
	"sync"

	"github.com/penglongli/gin-metrics/ginmetrics"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// TokenRefreshes counts what the auth interceptor did with a 401, by outcome.
	TokenRefreshes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bank_web_token_refresh_total",
		Help: "Access token refresh decisions taken after a backend 401.",
	}, []string{"outcome"})

	// SessionStoreErrors counts failed session store operations, by operation.
	SessionStoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bank_web_session_store_errors_total",
		Help: "Session store operations that returned an error.",
	}, []string{"op"})

	registerOnce sync.Once
)

// Register adds the application collectors to reg once.
func Register(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		reg.MustRegister(TokenRefreshes, SessionStoreErrors)
	})
}

// ObserveRefresh is shaped for auth.WithRefreshHook.
func ObserveRefresh(outcome string) {
	TokenRefreshes.WithLabelValues(outcome).Inc()
}

// GetMonitor configures the gin-metrics monitor that serves path.
func GetMonitor(path string, slowSeconds int32) *ginmetrics.Monitor {
	m := ginmetrics.GetMonitor()
	m.SetMetricPath(path)
	if slowSeconds > 0 {
		m.SetSlowTime(slowSeconds)
	}

	// used for p95, p99 of backend-bound requests
	m.SetDuration([]float64{0.05, 0.1, 0.2, 0.3, 0.5, 1, 2, 5, 10})

	Register(prometheus.DefaultRegisterer)
	return m
}
