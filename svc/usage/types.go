package usage

import "time"

// Metric identifies a monthly usage counter.
type Metric string

const (
	MetricApplications  Metric = "applications"
	MetricAgentMessages Metric = "agent_messages"
	MetricResumes       Metric = "resumes"
)

// Metrics lists all counters in display order.
func Metrics() []Metric {
	return []Metric{MetricApplications, MetricAgentMessages, MetricResumes}
}

// Valid reports whether the metric is a known counter.
func (m Metric) Valid() bool {
	switch m {
	case MetricApplications, MetricAgentMessages, MetricResumes:
		return true
	}
	return false
}

// Unlimited mirrors the plan-limit convention: -1 means no cap.
const Unlimited int64 = -1

// Counts holds a user's counters for one month.
type Counts struct {
	Applications  int64
	AgentMessages int64
	Resumes       int64
}

// Of returns the count for a metric.
func (c Counts) Of(m Metric) int64 {
	switch m {
	case MetricApplications:
		return c.Applications
	case MetricAgentMessages:
		return c.AgentMessages
	case MetricResumes:
		return c.Resumes
	}
	return 0
}

// MonthKey formats a timestamp as the UTC month bucket, e.g. "2025-07".
// Counters reset implicitly: a new month reads as a missing row.
func MonthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Snapshot pairs current counts with the tier limits in effect.
type Snapshot struct {
	Month  string
	Counts Counts
	Limits map[Metric]int64
}
