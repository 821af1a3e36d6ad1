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

// RunConsumption fetches one day of per-zone consumption volumes, merges
// them into national totals and writes the day's consumption.csv through
// every sink.
func RunConsumption(ctx context.Context, cfg *config.Config, day string) error {
	log := runLogger("consumption", day)

	start, end, err := timeutil.DayWindow(day)
	if err != nil {
		return err
	}
	log.WithFields(logger.Fields{
		"start_utc": timeutil.ISOMillis(start),
		"end_utc":   timeutil.ISOMillis(end),
	}).Info("resolved day window")

	records, err := esett.NewClient(cfg).FetchConsumption(ctx, start, end)
	if err != nil {
		return err
	}

	rows := processor.MergeConsumption(records)
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.Time,
			formatVolume(r.Flex),
			formatVolume(r.Metered),
			formatVolume(r.Profiled),
			formatVolume(r.Total),
		})
	}

	if err := writer.WriteAll(localSinks(cfg), day, "consumption", models.ConsumptionColumns, table); err != nil {
		return err
	}
	if err := archiveDay(ctx, cfg, day, "consumption", models.ConsumptionColumns, table); err != nil {
		return err
	}

	log.WithFields(logger.Fields{"rows": len(table)}).Info("consumption day completed")
	logger.GetLogger().LogMetric("consumption_pipeline", "rows_written", float64(len(table)), logger.Fields{"day": day})
	return nil
}
