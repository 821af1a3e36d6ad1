package pipeline

import (
	"context"

	"gridio/config"
	"gridio/internal/timeutil"
	"gridio/logger"
	"gridio/models"
	"gridio/processor"
	"gridio/reader/esett"
	"gridio/reader/svk"
	"gridio/writer"
)

// RunPrices assembles one day of price components from two independent
// sources: the Svk FCR-N auction CSV and the eSett settlement price
// export. The series are unioned by local time key; a key observed in one
// source only leaves the other columns blank.
func RunPrices(ctx context.Context, cfg *config.Config, day string) error {
	log := runLogger("prices", day)

	dayStart, err := timeutil.ParseDay(day)
	if err != nil {
		return err
	}
	start, end, err := timeutil.DayWindow(day)
	if err != nil {
		return err
	}

	fcrCSV, err := svk.NewClient(cfg).FetchFCRN(ctx, dayStart)
	if err != nil {
		return err
	}
	fcrn, err := processor.ParseFCRN(fcrCSV)
	if err != nil {
		return err
	}

	priceRecords, err := esett.NewClient(cfg).FetchPrices(ctx, start, end)
	if err != nil {
		return err
	}
	dayAhead, imbalanceUp, imbalanceDown := processor.MergePrices(priceRecords)

	rows := processor.AssemblePriceRows(models.PriceSeries{
		FCRN:          fcrn,
		DayAhead:      dayAhead,
		ImbalanceUp:   imbalanceUp,
		ImbalanceDown: imbalanceDown,
	})

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{r.Time, r.FCRN, r.DayAhead, r.ImbalanceUp, r.ImbalanceDown})
	}

	if err := writer.WriteAll(localSinks(cfg), day, "prices", models.PriceColumns, table); err != nil {
		return err
	}
	if err := archiveDay(ctx, cfg, day, "prices", models.PriceColumns, table); err != nil {
		return err
	}

	log.WithFields(logger.Fields{
		"rows":       len(table),
		"fcrn_keys":  len(fcrn),
		"esett_keys": len(dayAhead),
	}).Info("prices day completed")
	logger.GetLogger().LogMetric("prices_pipeline", "rows_written", float64(len(table)), logger.Fields{"day": day})
	return nil
}
