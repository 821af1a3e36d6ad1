package processor

import (
	"math"
	"sort"

	"gridio/internal/timeutil"
	"gridio/models"
)

// ConsumptionAccumulator sums per-zone consumption records into national
// totals. The upstream sign convention varies by zone, so every field is
// accumulated as an absolute value.
type ConsumptionAccumulator struct {
	buckets map[string]*models.ConsumptionRow
}

func NewConsumptionAccumulator() *ConsumptionAccumulator {
	return &ConsumptionAccumulator{buckets: make(map[string]*models.ConsumptionRow)}
}

// Add folds one raw record into the accumulator. Records without a UTC
// timestamp are dropped silently.
func (a *ConsumptionAccumulator) Add(rec models.ConsumptionRecord) {
	if rec.TimestampUTC == "" {
		return
	}
	bucket, ok := a.buckets[rec.TimestampUTC]
	if !ok {
		bucket = &models.ConsumptionRow{}
		a.buckets[rec.TimestampUTC] = bucket
	}
	bucket.Time = timeutil.LocalClockHMS(rec.Timestamp)
	bucket.Flex += math.Abs(models.Float(rec.Flex))
	bucket.Metered += math.Abs(models.Float(rec.Metered))
	bucket.Profiled += math.Abs(models.Float(rec.Profiled))
	bucket.Total += math.Abs(models.Float(rec.Total))
}

// Rows returns one merged row per distinct UTC instant, ordered by UTC key.
func (a *ConsumptionAccumulator) Rows() []models.ConsumptionRow {
	keys := make([]string, 0, len(a.buckets))
	for k := range a.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]models.ConsumptionRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *a.buckets[k])
	}
	return rows
}

// MergeConsumption folds a raw record sequence into ordered national rows.
func MergeConsumption(records []models.ConsumptionRecord) []models.ConsumptionRow {
	acc := NewConsumptionAccumulator()
	for _, rec := range records {
		acc.Add(rec)
	}
	return acc.Rows()
}
