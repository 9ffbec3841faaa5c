package quality

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Instrumentación de las corridas del reporte de calidad
var (
	reportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quality_report_runs_total",
		Help: "Corridas del reporte de calidad de datos, por resultado",
	}, []string{"result"})

	reportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "quality_report_duration_seconds",
		Help:    "Duración de la generación del reporte de calidad",
		Buckets: prometheus.DefBuckets,
	})

	lastDQS = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quality_report_dqs",
		Help: "Último puntaje DQS calculado",
	})
)
