package datastore

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/huangsam/reportboard/internal/contract"
	"github.com/huangsam/reportboard/schema"
)

type weighted struct {
	value  string
	weight float64
}

var (
	seedCategories = []weighted{{"Claims", 0.5}, {"Payments", 0.3}, {"Eligibility", 0.2}}
	seedStatuses   = []weighted{{"success", 0.85}, {"failed", 0.15}}
)

// GenerateLogs builds n sample request logs spread uniformly over the days before now.
// Successful requests take about 200±50ms and failures about 500±150ms.
func GenerateLogs(n, days int, now time.Time, rng *rand.Rand) []schema.RequestLog {
	if n <= 0 {
		return nil
	}
	span := int64(max(days, 1)) * int64(24*time.Hour)
	start := now.Add(-time.Duration(span))

	logs := make([]schema.RequestLog, 0, n)
	for i := range n {
		status := pick(seedStatuses, rng)
		mean, std := 200.0, 50.0
		if status != "success" {
			mean, std = 500.0, 150.0
		}
		latency := math.Max(1, math.Round((rng.NormFloat64()*std+mean)*100)/100)

		logs = append(logs, schema.RequestLog{
			Name:         fmt.Sprintf("API Request %d", i+1),
			Category:     pick(seedCategories, rng),
			Status:       status,
			ResponseTime: fmt.Sprintf("%.2f", latency),
			RequestDate:  start.Add(time.Duration(rng.Int64N(span))).Truncate(time.Second),
		})
	}
	return logs
}

// Seed inserts n generated request logs into store.
func Seed(ctx context.Context, store contract.RecordStore, n, days int, now time.Time, rng *rand.Rand) (int, error) {
	written, err := store.InsertRows(ctx, GenerateLogs(n, days, now, rng))
	if err != nil {
		return 0, fmt.Errorf("failed to seed request logs: %w", err)
	}
	return written, nil
}

func pick(choices []weighted, rng *rand.Rand) string {
	r := rng.Float64()
	for _, c := range choices {
		if r < c.weight {
			return c.value
		}
		r -= c.weight
	}
	return choices[len(choices)-1].value
}
