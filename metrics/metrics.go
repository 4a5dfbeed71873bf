// Package metrics records one run of the scheduler and pushes it to a
// Prometheus Pushgateway. There is no /metrics endpoint since the process
// exits after each run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/kova98/lueur/models"
)

const jobName = "lueur"

type Metrics struct {
	registry *prometheus.Registry

	RunDuration      prometheus.Gauge
	LastSuccess      prometheus.Gauge
	ScheduledPublish prometheus.Gauge
	ReportedEmail    *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lueur_run_duration_seconds",
			Help: "Wall time of the last scheduler run.",
		}),
		LastSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lueur_last_success_timestamp_seconds",
			Help: "Unix time at which the last successful run finished.",
		}),
		ScheduledPublish: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lueur_scheduled_publish_timestamp_seconds",
			Help: "Unix time the most recently scheduled email will be published.",
		}),
		ReportedEmail: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lueur_reported_email_metric",
			Help: "Delivery counters of the email reported on in the last run.",
		}, []string{"counter"}),
	}
}

func (m *Metrics) ObserveSchedule(publishAt time.Time) {
	m.ScheduledPublish.Set(float64(publishAt.Unix()))
}

func (m *Metrics) ObserveAnalytics(a models.Analytics) {
	m.ReportedEmail.WithLabelValues("recipients").Set(float64(a.Recipients))
	m.ReportedEmail.WithLabelValues("deliveries").Set(float64(a.Deliveries))
	m.ReportedEmail.WithLabelValues("opens").Set(float64(a.Opens))
	m.ReportedEmail.WithLabelValues("clicks").Set(float64(a.Clicks))
	m.ReportedEmail.WithLabelValues("temporary_failures").Set(float64(a.TemporaryFailures))
	m.ReportedEmail.WithLabelValues("permanent_failures").Set(float64(a.PermanentFailures))
	m.ReportedEmail.WithLabelValues("unsubscriptions").Set(float64(a.Unsubscriptions))
	m.ReportedEmail.WithLabelValues("complaints").Set(float64(a.Complaints))
}

func (m *Metrics) ObserveSuccess(started, finished time.Time) {
	m.RunDuration.Set(finished.Sub(started).Seconds())
	m.LastSuccess.Set(float64(finished.Unix()))
}

// Push sends the collected metrics to the Pushgateway at url, replacing the
// previous push for this job.
func (m *Metrics) Push(url string) error {
	return push.New(url, jobName).Gatherer(m.registry).Push()
}
