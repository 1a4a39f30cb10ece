package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsForwarded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techrelay_requests_forwarded_total",
		Help: "Total number of technician requests forwarded to a destination conversation",
	}, []string{"source"})
	RequestsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techrelay_requests_rejected_total",
		Help: "Total number of technician requests rejected for not matching a template",
	}, []string{"source"})
	ForwardFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techrelay_forward_failures_total",
		Help: "Total number of forward or confirmation sends that failed",
	}, []string{"stage"})
	// via is "quote", "account" or "reaction".
	RequestsResolved = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "techrelay_requests_resolved_total",
		Help: "Total number of tracked requests marked resolved",
	}, []string{"via"})
	RemindersSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "techrelay_reminders_sent_total",
		Help: "Total number of SLA reminders delivered",
	})
	ReminderFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "techrelay_reminder_failures_total",
		Help: "Total number of SLA reminder sends that failed and will be retried",
	})
	RecordsRepaired = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "techrelay_records_repaired_total",
		Help: "Total number of tracking records backfilled with a creation time",
	})
	UnresolvedRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "techrelay_unresolved_records",
		Help: "Number of unresolved tracking records seen by the last escalation sweep",
	})
	StoreSaveFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "techrelay_store_save_failures_total",
		Help: "Total number of failed tracking document writes",
	})
	StoreLoadFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "techrelay_store_load_failures_total",
		Help: "Total number of tracking document reads that fell back to an empty store",
	})
)

// Registry holds every relay collector plus the Go runtime collectors.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestsForwarded,
		RequestsRejected,
		ForwardFailures,
		RequestsResolved,
		RemindersSent,
		ReminderFailures,
		RecordsRepaired,
		UnresolvedRecords,
		StoreSaveFailures,
		StoreLoadFailures,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
