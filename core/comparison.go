package core

import "github.com/huangsam/reportboard/schema"

// Compare computes the deltas of current against previous. It returns nil when
// there is no previous snapshot. Relative deltas against a zero baseline are 0.
func Compare(current schema.MetricsSnapshot, previous *schema.MetricsSnapshot) *schema.Comparison {
	if previous == nil {
		return nil
	}
	return &schema.Comparison{
		TotalRequests:   relativeDelta(float64(current.TotalRequests), float64(previous.TotalRequests)),
		SuccessRate:     current.SuccessRate - previous.SuccessRate,
		AvgResponseTime: relativeDelta(current.AvgResponseTime, previous.AvgResponseTime),
		FailedRequests:  relativeDelta(float64(current.FailedRequests), float64(previous.FailedRequests)),
	}
}

// relativeDelta returns the change from before to after in percent of before.
func relativeDelta(after, before float64) float64 {
	if before == 0 {
		return 0
	}
	return (after - before) / before * 100
}

// PeriodOverPeriod aggregates both subsets and compares them. The previous snapshot
// and the comparison are nil when the previous period has no records.
func PeriodOverPeriod(matched, previous []schema.Record, roles schema.FieldRoles) (schema.MetricsSnapshot, *schema.MetricsSnapshot, *schema.Comparison) {
	current := Aggregate(matched, roles)
	if len(previous) == 0 {
		return current, nil, nil
	}
	prev := Aggregate(previous, roles)
	return current, &prev, Compare(current, &prev)
}
