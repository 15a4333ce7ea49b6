package schema

// MetricsSnapshot holds the aggregate figures for a record subset.
type MetricsSnapshot struct {
	TotalRequests      int     `json:"total_requests"`
	SuccessfulRequests int     `json:"successful_requests"`
	SuccessRate        float64 `json:"success_rate"`      // Percentage in [0, 100]
	AvgResponseTime    float64 `json:"avg_response_time"` // Mean latency, 0 for an empty subset
	FailedRequests     int     `json:"failed_requests"`
}

// MetricKey identifies one of the snapshot metrics.
type MetricKey string

// Metric keys used by comparisons and presentation.
const (
	MetricTotalRequests   MetricKey = "total_requests"
	MetricSuccessRate     MetricKey = "success_rate"
	MetricAvgResponseTime MetricKey = "avg_response_time"
	MetricFailedRequests  MetricKey = "failed_requests"
)

// MetricDefinition describes how a metric is labelled and which direction is good.
// Inverse is set when a positive delta means things got worse.
type MetricDefinition struct {
	Key     MetricKey `json:"key"`
	Title   string    `json:"title"`
	Suffix  string    `json:"suffix"`
	Inverse bool      `json:"inverse"`
}

// MetricDefinitions lists the snapshot metrics in display order.
var MetricDefinitions = []MetricDefinition{
	{Key: MetricTotalRequests, Title: "Total Requests"},
	{Key: MetricSuccessRate, Title: "Success Rate", Suffix: "%"},
	{Key: MetricAvgResponseTime, Title: "Avg Response Time", Suffix: "ms", Inverse: true},
	{Key: MetricFailedRequests, Title: "Failed Requests", Inverse: true},
}

// Value returns the snapshot figure for the given metric.
func (m MetricsSnapshot) Value(key MetricKey) float64 {
	switch key {
	case MetricTotalRequests:
		return float64(m.TotalRequests)
	case MetricSuccessRate:
		return m.SuccessRate
	case MetricAvgResponseTime:
		return m.AvgResponseTime
	case MetricFailedRequests:
		return float64(m.FailedRequests)
	default:
		return 0
	}
}
