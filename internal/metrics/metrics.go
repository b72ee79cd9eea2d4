// Package metrics records clause extraction activity as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/Veraticus/smartcp/internal/engine"
	"github.com/Veraticus/smartcp/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ engine.Observer = (*Recorder)(nil)

// Recorder implements engine.Observer on a private registry.
//
// Metrics:
//   - smartcp_documents_processed_total{role}
//   - smartcp_extracted_items_total{strategy,category}
//   - smartcp_extraction_failures_total{stage}
//   - smartcp_result_items{category}
//   - smartcp_extractions_total
type Recorder struct {
	registry *prometheus.Registry

	DocumentsTotal   *prometheus.CounterVec
	ItemsTotal       *prometheus.CounterVec
	FailuresTotal    *prometheus.CounterVec
	ResultItems      *prometheus.GaugeVec
	ExtractionsTotal prometheus.Counter
}

// NewRecorder creates a recorder with all metrics registered.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		DocumentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartcp_documents_processed_total",
				Help: "Total number of documents passed through clause extraction",
			},
			[]string{"role"},
		),
		ItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartcp_extracted_items_total",
				Help: "Total number of raw items emitted by each extraction strategy",
			},
			[]string{"strategy", "category"},
		),
		FailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "smartcp_extraction_failures_total",
				Help: "Total number of extractions stopped by a failure",
			},
			[]string{"stage"},
		),
		ResultItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "smartcp_result_items",
				Help: "Number of deduplicated items per category in the last result",
			},
			[]string{"category"},
		),
		ExtractionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "smartcp_extractions_total",
				Help: "Total number of completed extraction runs",
			},
		),
	}
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveDocument counts a processed document.
func (r *Recorder) ObserveDocument(role string) {
	r.DocumentsTotal.WithLabelValues(role).Inc()
}

// ObserveStrategy counts the raw items a strategy emitted.
func (r *Recorder) ObserveStrategy(strategy string, clauses model.Clauses) {
	for category, items := range clauses {
		if len(items) == 0 {
			continue
		}
		r.ItemsTotal.WithLabelValues(strategy, string(category)).Add(float64(len(items)))
	}
}

// ObserveFailure counts a caught extraction failure.
func (r *Recorder) ObserveFailure(stage string) {
	r.FailuresTotal.WithLabelValues(stage).Inc()
}

// ObserveResult records the size of each category in the final result.
func (r *Recorder) ObserveResult(result model.ExtractionResult) {
	r.ExtractionsTotal.Inc()
	for _, category := range model.Categories() {
		r.ResultItems.WithLabelValues(string(category)).Set(float64(len(result[category])))
	}
}

// WriteTextfile writes the current metrics in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
