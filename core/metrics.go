package core

import (
	"strings"

	"github.com/huangsam/reportboard/core/coerce"
	"github.com/huangsam/reportboard/schema"
)

// IsSuccess reports whether a status value counts as a successful request.
func IsSuccess(status string) bool {
	_, ok := schema.SuccessStatuses[strings.ToLower(strings.TrimSpace(status))]
	return ok
}

// Aggregate computes the metrics snapshot of a record subset in one pass.
// Missing or unusable status and latency data degrade to failure and zero.
func Aggregate(records []schema.Record, roles schema.FieldRoles) schema.MetricsSnapshot {
	var m schema.MetricsSnapshot
	m.TotalRequests = len(records)
	if m.TotalRequests == 0 {
		return m
	}

	var latencySum float64
	for _, rec := range records {
		if roles.Status != "" && IsSuccess(rec.Get(roles.Status).Text) {
			m.SuccessfulRequests++
		}
		if roles.Latency != "" {
			latencySum += latencyOf(rec.Get(roles.Latency))
		}
	}

	m.FailedRequests = m.TotalRequests - m.SuccessfulRequests
	m.SuccessRate = float64(m.SuccessfulRequests) / float64(m.TotalRequests) * 100
	m.AvgResponseTime = latencySum / float64(m.TotalRequests)
	return m
}

// latencyOf reads a latency cell whatever kind its column was inferred as.
func latencyOf(v schema.Value) float64 {
	if v.Kind == schema.NumericKind {
		return v.Number
	}
	n, _ := coerce.Numeric(v.Text)
	return n
}
