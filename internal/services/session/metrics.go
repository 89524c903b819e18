package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_sweep_runs_total",
		Help: "Количество запусков массового прохода по просроченным записям.",
	})
	sessionsDeactivatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_deactivated_total",
		Help: "Количество деактивированных клиентских сессий.",
	})
	sweepUserErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_sweep_user_errors_total",
		Help: "Количество ошибок обработки отдельных пользователей в проходе.",
	})
)
