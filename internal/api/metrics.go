package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "workbook_uploads_total",
		Help: "Workbook upload attempts by outcome.",
	}, []string{"status"})

	datasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dataset_rows",
		Help: "Rows in the current snapshot per table.",
	}, []string{"table"})

	aiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_insight_requests_total",
		Help: "AI insight requests by outcome.",
	}, []string{"status"})
)
