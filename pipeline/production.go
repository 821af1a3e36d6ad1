package pipeline

import (
	"context"

	"gridio/config"
	"gridio/internal/timeutil"
	"gridio/logger"
	"gridio/models"
	"gridio/processor"
	"gridio/reader/esett"
	"gridio/writer"
)

// RunProduction fetches one day of per-zone production volumes, merges
// them into national totals and writes the day's production.csv through
// every sink.
func RunProduction(ctx context.Context, cfg *config.Config, day string) error {
	log := runLogger("production", day)

	start, end, err := timeutil.DayWindow(day)
	if err != nil {
		return err
	}
	log.WithFields(logger.Fields{
		"start_utc": timeutil.ISOMillis(start),
		"end_utc":   timeutil.ISOMillis(end),
	}).Info("resolved day window")

	records, err := esett.NewClient(cfg).FetchProduction(ctx, start, end)
	if err != nil {
		return err
	}

	rows := processor.MergeProduction(records)
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Time,
			formatVolume(r.Hydro),
			formatVolume(r.Nuclear),
			formatVolume(r.Solar),
			formatVolume(r.Thermal),
			formatVolume(r.Wind),
			formatVolume(r.WindOffshore),
			formatVolume(r.EnergyStorage),
			formatVolume(r.Other),
			formatVolume(r.Total),
		})
	}

	if err := writer.WriteAll(localSinks(cfg), day, "production", models.ProductionColumns, table); err != nil {
		return err
	}
	if err := archiveDay(ctx, cfg, day, "production", models.ProductionColumns, table); err != nil {
		return err
	}

	log.WithFields(logger.Fields{"rows": len(table)}).Info("production day completed")
	logger.GetLogger().LogMetric("production_pipeline", "rows_written", float64(len(table)), logger.Fields{"day": day})
	return nil
}
