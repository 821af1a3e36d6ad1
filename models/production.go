package models

// ProductionRecord is one raw row from the eSett EXP16 Volumes export.
// The API reports one record per bidding zone per interval; numeric fields
// may be null, which decodes to nil and counts as zero.
type ProductionRecord struct {
	TimestampUTC  string   `json:"timestampUTC"`
	Timestamp     string   `json:"timestamp"`
	Hydro         *float64 `json:"hydro"`
	Nuclear       *float64 `json:"nuclear"`
	Solar         *float64 `json:"solar"`
	Thermal       *float64 `json:"thermal"`
	Wind          *float64 `json:"wind"`
	WindOffshore  *float64 `json:"windOffshore"`
	EnergyStorage *float64 `json:"energyStorage"`
	Other         *float64 `json:"other"`
	Total         *float64 `json:"total"`
}

// ProductionRow is the national total for one interval, summed across all
// bidding zones that reported the same UTC instant. Signs are preserved as
// provided by the API.
type ProductionRow struct {
	Time          string
	Hydro         float64
	Nuclear       float64
	Solar         float64
	Thermal       float64
	Wind          float64
	WindOffshore  float64
	EnergyStorage float64
	Other         float64
	Total         float64
}

// ProductionColumns is the output column order for production CSV files.
var ProductionColumns = []string{
	"time",
	"hydro",
	"nuclear",
	"solar",
	"thermal",
	"wind",
	"wind_offshore",
	"energy_storage",
	"other",
	"total",
}

// Float returns the value of an optional numeric field, treating absent or
// null fields as zero.
func Float(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
