// Package processor reconciles raw per-zone API records onto one dense
// local-time axis per day. Accumulators are plain values owned by a single
// pipeline invocation; merging is a fold over the raw record sequence.
package processor

import (
	"sort"

	"gridio/internal/timeutil"
	"gridio/models"
)

// ProductionAccumulator sums per-zone production records into national
// totals. Buckets are keyed by the record's UTC timestamp string so that
// the same instant reported by different bidding zones lands in one
// bucket; the displayed time key is the local HH:MM:SS clock.
type ProductionAccumulator struct {
	buckets map[string]*models.ProductionRow
}

func NewProductionAccumulator() *ProductionAccumulator {
	return &ProductionAccumulator{buckets: make(map[string]*models.ProductionRow)}
}

// Add folds one raw record into the accumulator. Records without a UTC
// timestamp are dropped silently.
func (a *ProductionAccumulator) Add(rec models.ProductionRecord) {
	if rec.TimestampUTC == "" {
		return
	}
	bucket, ok := a.buckets[rec.TimestampUTC]
	if !ok {
		bucket = &models.ProductionRow{}
		a.buckets[rec.TimestampUTC] = bucket
	}
	bucket.Time = timeutil.LocalClockHMS(rec.Timestamp)
	bucket.Hydro += models.Float(rec.Hydro)
	bucket.Nuclear += models.Float(rec.Nuclear)
	bucket.Solar += models.Float(rec.Solar)
	bucket.Thermal += models.Float(rec.Thermal)
	bucket.Wind += models.Float(rec.Wind)
	bucket.WindOffshore += models.Float(rec.WindOffshore)
	bucket.EnergyStorage += models.Float(rec.EnergyStorage)
	bucket.Other += models.Float(rec.Other)
	bucket.Total += models.Float(rec.Total)
}

// Rows returns one merged row per distinct UTC instant, ordered by UTC
// key. Within one day that order matches the local time key order.
func (a *ProductionAccumulator) Rows() []models.ProductionRow {
	keys := make([]string, 0, len(a.buckets))
	for k := range a.buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]models.ProductionRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, *a.buckets[k])
	}
	return rows
}

// MergeProduction folds a raw record sequence into ordered national rows.
func MergeProduction(records []models.ProductionRecord) []models.ProductionRow {
	acc := NewProductionAccumulator()
	for _, rec := range records {
		acc.Add(rec)
	}
	return acc.Rows()
}
