// Package metrics records build statistics.
//
// Components take a Recorder; NoopRecorder is used when metrics are not wanted and
// PrometheusRecorder exposes the numbers for scraping while the preview server runs.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "otsu"

// Page kinds.
const (
	KindPost = "post"
	KindList = "list"
	KindFeed = "feed"
)

// Recorder receives build statistics.
type Recorder interface {
	AddRecords(collection string, n int)
	AddWords(n int)
	IncPages(kind string)
	ObserveBuildDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) AddRecords(string, int)             {}
func (NoopRecorder) AddWords(int)                       {}
func (NoopRecorder) IncPages(string)                    {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}

// PrometheusRecorder implements Recorder with Prometheus metrics.
type PrometheusRecorder struct {
	reg           *prom.Registry
	records       *prom.CounterVec
	words         prom.Counter
	pages         *prom.CounterVec
	buildDuration prom.Gauge
}

// NewPrometheusRecorder creates the metrics and registers them on a new registry.
func NewPrometheusRecorder() *PrometheusRecorder {
	pr := PrometheusRecorder{
		reg: prom.NewRegistry(),
		records: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Content records collected",
		}, []string{"collection"}),
		words: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "words_total",
			Help:      "Words in collected content",
		}),
		pages: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Output files written by kind",
		}, []string{"kind"}),
		buildDuration: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of the last build",
		}),
	}
	pr.reg.MustRegister(pr.records, pr.words, pr.pages, pr.buildDuration)
	return &pr
}

func (pr *PrometheusRecorder) AddRecords(collection string, n int) {
	pr.records.WithLabelValues(collection).Add(float64(n))
}

func (pr *PrometheusRecorder) AddWords(n int) {
	pr.words.Add(float64(n))
}

func (pr *PrometheusRecorder) IncPages(kind string) {
	pr.pages.WithLabelValues(kind).Inc()
}

func (pr *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	pr.buildDuration.Set(d.Seconds())
}

// Registry returns the registry holding the metrics.
func (pr *PrometheusRecorder) Registry() *prom.Registry {
	return pr.reg
}

// Handler serves the metrics in the Prometheus exposition format.
func (pr *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(pr.reg, promhttp.HandlerOpts{})
}
