package processor

import (
	"encoding/csv"
	"sort"
	"strings"

	"gridio/internal/timeutil"
	"gridio/logger"
	"gridio/models"
)

const (
	fcrnDateColumn  = "Datum"
	fcrnPriceColumn = "FCR-N Pris (EUR/MW)"
)

// ParseFCRN parses the semicolon-delimited Mimer auction export into a
// TimeKey -> formatted price mapping. Column positions are located by
// case-insensitive header match; a missing column is a SchemaError. Data
// rows with an empty time or price cell, or a price that does not parse
// as a comma- or period-separated decimal, are skipped.
func ParseFCRN(csvText string) (map[string]string, error) {
	csvText = strings.TrimPrefix(csvText, "\uFEFF")

	reader := csv.NewReader(strings.NewReader(csvText))
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return map[string]string{}, nil
	}

	idxTime, idxPrice := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")) {
		case strings.ToLower(fcrnDateColumn):
			idxTime = i
		case strings.ToLower(fcrnPriceColumn):
			idxPrice = i
		}
	}
	if idxTime < 0 {
		return nil, &models.SchemaError{Column: fcrnDateColumn}
	}
	if idxPrice < 0 {
		return nil, &models.SchemaError{Column: fcrnPriceColumn}
	}

	out := make(map[string]string)
	for {
		row, err := reader.Read()
		if err != nil {
			break
		}
		if len(row) <= idxTime || len(row) <= idxPrice {
			continue
		}
		timeRaw := strings.TrimSpace(row[idxTime])
		priceRaw := strings.TrimSpace(row[idxPrice])
		if timeRaw == "" || priceRaw == "" {
			continue
		}
		timeHMS := timeutil.ExtractHMS(timeRaw)
		if timeHMS == "" {
			continue
		}
		price, err := timeutil.ParseDecimal(priceRaw)
		if err != nil {
			continue
		}
		out[timeHMS] = timeutil.FormatPrice(price)
	}
	return out, nil
}

// MergePrices derives the day-ahead and imbalance series from the eSett
// settlement records. The time key comes from converting the record's UTC
// timestamp into the Stockholm clock. eSett exposes one undifferentiated
// imbalance price, so the up and down series carry the same value; keep a
// single derivation site should a directional source ever appear.
func MergePrices(records []models.PriceRecord) (dayAhead, imbalanceUp, imbalanceDown map[string]string) {
	log := logger.GetLogger().WithComponent("price_processor")

	dayAhead = make(map[string]string)
	imbalanceUp = make(map[string]string)
	imbalanceDown = make(map[string]string)

	for _, rec := range records {
		ts := rec.Timestamp
		if ts == "" {
			ts = rec.TimestampUTC
		}
		if ts == "" {
			continue
		}
		timeHMS, err := timeutil.ToLocalHMS(ts)
		if err != nil {
			log.WithFields(logger.Fields{"timestamp": ts}).Debug("skipping price record with bad timestamp")
			continue
		}

		sales := models.Float(rec.ImblSalesPrice)
		spotDiff := models.Float(rec.ImblSpotDifferencePrice)

		dayAhead[timeHMS] = timeutil.FormatPrice(sales - spotDiff)
		imbalanceUp[timeHMS] = timeutil.FormatPrice(sales)
		imbalanceDown[timeHMS] = timeutil.FormatPrice(sales)
	}
	return dayAhead, imbalanceUp, imbalanceDown
}

// AssemblePriceRows unions the time keys of all price series and emits one
// row per observed key in chronological order. A key absent from a series
// renders as an empty cell.
func AssemblePriceRows(series models.PriceSeries) []models.PriceRow {
	keySet := make(map[string]struct{})
	for _, m := range []map[string]string{series.FCRN, series.DayAhead, series.ImbalanceUp, series.ImbalanceDown} {
		for k := range m {
			keySet[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	// HH:MM:SS lexical order is chronological order within one day.
	sort.Strings(keys)

	rows := make([]models.PriceRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, models.PriceRow{
			Time:          k,
			FCRN:          series.FCRN[k],
			DayAhead:      series.DayAhead[k],
			ImbalanceUp:   series.ImbalanceUp[k],
			ImbalanceDown: series.ImbalanceDown[k],
		})
	}
	return rows
}
