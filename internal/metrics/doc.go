// Package metrics defines Prometheus metrics for the relay, covering
// request routing, resolution, SLA reminders, and tracking store writes.
package metrics
