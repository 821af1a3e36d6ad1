package models

// PriceRecord is one raw row from the eSett EXP14 Prices export for a
// single bidding zone. The API exposes one undifferentiated imbalance
// price; there is no separate up/down pair.
type PriceRecord struct {
	Timestamp               string   `json:"timestamp"`
	TimestampUTC            string   `json:"timestampUTC"`
	ImblSalesPrice          *float64 `json:"imblSalesPrice"`
	ImblSpotDifferencePrice *float64 `json:"imblSpotDifferencePrice"`
}

// PriceSeries holds the independently sourced price mappings keyed
// by local HH:MM:SS. A key present in one series and absent from another
// renders as an empty cell in the assembled row.
type PriceSeries struct {
	FCRN          map[string]string
	DayAhead      map[string]string
	ImbalanceUp   map[string]string
	ImbalanceDown map[string]string
}

// PriceRow is one assembled output row. Values are pre-formatted strings
// with five decimal digits; missing values stay empty.
type PriceRow struct {
	Time          string
	FCRN          string
	DayAhead      string
	ImbalanceUp   string
	ImbalanceDown string
}

// PriceColumns is the output column order for price CSV files.
var PriceColumns = []string{
	"time",
	"fcrn",
	"day_ahead",
	"imbalance_up",
	"imbalance_down",
}

// FrequencyColumns is the output column order for per-day frequency files.
var FrequencyColumns = []string{
	"time",
	"frequency",
}
