package core

import (
	"math"
	"testing"

	"github.com/huangsam/reportboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	t.Run("absent previous", func(t *testing.T) {
		assert.Nil(t, Compare(schema.MetricsSnapshot{TotalRequests: 5}, nil))
	})

	t.Run("relative and point deltas", func(t *testing.T) {
		current := schema.MetricsSnapshot{TotalRequests: 150, SuccessRate: 90, AvgResponseTime: 180, FailedRequests: 15}
		previous := schema.MetricsSnapshot{TotalRequests: 100, SuccessRate: 80, AvgResponseTime: 200, FailedRequests: 20}

		c := Compare(current, &previous)
		require.NotNil(t, c)
		assert.InDelta(t, 50.0, c.TotalRequests, 1e-9)
		assert.InDelta(t, 10.0, c.SuccessRate, 1e-9) // points, not percent of percent
		assert.InDelta(t, -10.0, c.AvgResponseTime, 1e-9)
		assert.InDelta(t, -25.0, c.FailedRequests, 1e-9)
	})

	t.Run("zero baseline yields zero", func(t *testing.T) {
		current := schema.MetricsSnapshot{TotalRequests: 3, SuccessRate: 100, AvgResponseTime: 20, FailedRequests: 2}
		previous := schema.MetricsSnapshot{}

		c := Compare(current, &previous)
		require.NotNil(t, c)
		for _, def := range schema.MetricDefinitions {
			d := c.Delta(def.Key)
			assert.False(t, math.IsInf(d, 0) || math.IsNaN(d), def.Title)
		}
		assert.Equal(t, 0.0, c.TotalRequests)
		assert.Equal(t, 0.0, c.AvgResponseTime)
		assert.Equal(t, 0.0, c.FailedRequests)
		assert.Equal(t, 100.0, c.SuccessRate)
	})
}

func TestPeriodOverPeriod(t *testing.T) {
	roles := schema.FieldRoles{Status: "status"}
	ok := schema.Record{Values: map[string]schema.Value{"status": {Text: "ok"}}}
	bad := schema.Record{Values: map[string]schema.Value{"status": {Text: "failed"}}}

	t.Run("no previous records", func(t *testing.T) {
		current, prev, cmp := PeriodOverPeriod([]schema.Record{ok}, nil, roles)
		assert.Equal(t, 1, current.TotalRequests)
		assert.Nil(t, prev)
		assert.Nil(t, cmp)
	})

	t.Run("previous records present", func(t *testing.T) {
		current, prev, cmp := PeriodOverPeriod([]schema.Record{ok, ok}, []schema.Record{ok, bad}, roles)
		assert.Equal(t, 2, current.TotalRequests)
		require.NotNil(t, prev)
		require.NotNil(t, cmp)
		assert.InDelta(t, 50.0, cmp.SuccessRate, 1e-9)
		assert.InDelta(t, 0.0, cmp.TotalRequests, 1e-9)
		assert.InDelta(t, -100.0, cmp.FailedRequests, 1e-9)
	})

	t.Run("empty current with previous", func(t *testing.T) {
		current, prev, cmp := PeriodOverPeriod(nil, []schema.Record{ok}, roles)
		assert.Equal(t, schema.MetricsSnapshot{}, current)
		require.NotNil(t, prev)
		require.NotNil(t, cmp)
		assert.InDelta(t, -100.0, cmp.TotalRequests, 1e-9)
	})
}
