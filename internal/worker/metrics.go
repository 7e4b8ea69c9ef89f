package worker

import (
	"time"

	"kioscopos/internal/infra"
)

func observarJob(jobType string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	infra.JobsProcesados.WithLabelValues(jobType, result).Inc()
	infra.JobDuracion.WithLabelValues(jobType).Observe(d.Seconds())
}
