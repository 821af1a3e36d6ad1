package models

// ConsumptionRecord is one raw row from the eSett EXP15 Consumption
// export, one record per bidding zone per interval.
type ConsumptionRecord struct {
	TimestampUTC string   `json:"timestampUTC"`
	Timestamp    string   `json:"timestamp"`
	Flex         *float64 `json:"flex"`
	Metered      *float64 `json:"metered"`
	Profiled     *float64 `json:"profiled"`
	Total        *float64 `json:"total"`
}

// ConsumptionRow is the national total for one interval. The upstream sign
// convention is inconsistent across zones, so every field is accumulated
// as an absolute value.
type ConsumptionRow struct {
	Time     string
	Flex     float64
	Metered  float64
	Profiled float64
	Total    float64
}

// ConsumptionColumns is the output column order for consumption CSV files.
var ConsumptionColumns = []string{
	"time",
	"flex",
	"metered",
	"profiled",
	"total",
}
