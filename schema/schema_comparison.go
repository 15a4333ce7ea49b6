package schema

// Comparison holds signed deltas of a snapshot against the previous period.
// SuccessRate is in percentage points; the other fields are relative changes in percent.
type Comparison struct {
	TotalRequests   float64 `json:"total_requests"`
	SuccessRate     float64 `json:"success_rate"`
	AvgResponseTime float64 `json:"avg_response_time"`
	FailedRequests  float64 `json:"failed_requests"`
}

// Delta returns the delta for the given metric.
func (c Comparison) Delta(key MetricKey) float64 {
	switch key {
	case MetricTotalRequests:
		return c.TotalRequests
	case MetricSuccessRate:
		return c.SuccessRate
	case MetricAvgResponseTime:
		return c.AvgResponseTime
	case MetricFailedRequests:
		return c.FailedRequests
	default:
		return 0
	}
}

// Trend classifies a delta for display.
type Trend string

// All trends supported.
const (
	TrendImproving Trend = "improving"
	TrendWorsening Trend = "worsening"
	TrendFlat      Trend = "flat"
)

// TrendOf classifies a signed delta, flipping the sense for inverse metrics.
func TrendOf(delta float64, inverse bool) Trend {
	switch {
	case delta == 0:
		return TrendFlat
	case (delta > 0) != inverse:
		return TrendImproving
	default:
		return TrendWorsening
	}
}
