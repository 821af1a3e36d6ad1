package processor

import (
	"errors"
	"testing"

	"gridio/models"
)

func TestParseFCRN(t *testing.T) {
	csvText := "Datum;Område;FCR-N Pris (EUR/MW)\n" +
		"2024-01-01 00:00:00;SN1;12,5\n" +
		"2024-01-01 01:00:00;SN1;30.25\n"

	prices, err := ParseFCRN(csvText)
	if err != nil {
		t.Fatalf("ParseFCRN: %v", err)
	}
	if got := prices["00:00:00"]; got != "12.50000" {
		t.Errorf("prices[00:00:00] = %q, want 12.50000", got)
	}
	if got := prices["01:00:00"]; got != "30.25000" {
		t.Errorf("prices[01:00:00] = %q, want 30.25000", got)
	}
}

func TestParseFCRNMixedCaseHeader(t *testing.T) {
	csvText := "DATUM;Fcr-N Pris (EUR/MW)\n" +
		"2024-01-01 00:00:00;12,5\n"

	prices, err := ParseFCRN(csvText)
	if err != nil {
		t.Fatalf("ParseFCRN: %v", err)
	}
	if got := prices["00:00:00"]; got != "12.50000" {
		t.Errorf("prices[00:00:00] = %q, want 12.50000", got)
	}
}

func TestParseFCRNBOMPrefix(t *testing.T) {
	csvText := "\uFEFFDatum;FCR-N Pris (EUR/MW)\n" +
		"2024-01-01 05:00:00;7\n"

	prices, err := ParseFCRN(csvText)
	if err != nil {
		t.Fatalf("ParseFCRN: %v", err)
	}
	if got := prices["05:00:00"]; got != "7.00000" {
		t.Errorf("prices[05:00:00] = %q, want 7.00000", got)
	}
}

func TestParseFCRNMissingColumn(t *testing.T) {
	var schemaErr *models.SchemaError

	_, err := ParseFCRN("Datum;Something\n2024-01-01 00:00:00;1\n")
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if schemaErr.Column != "FCR-N Pris (EUR/MW)" {
		t.Errorf("column = %q", schemaErr.Column)
	}

	_, err = ParseFCRN("When;FCR-N Pris (EUR/MW)\n")
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err = %v, want SchemaError", err)
	}
	if schemaErr.Column != "Datum" {
		t.Errorf("column = %q", schemaErr.Column)
	}
}

func TestParseFCRNSkipsBadRows(t *testing.T) {
	csvText := "Datum;FCR-N Pris (EUR/MW)\n" +
		";12,5\n" + // empty time
		"2024-01-01 01:00:00;\n" + // empty price
		"2024-01-01 02:00:00;abc\n" + // unparseable price
		"no embedded time;3\n" + // no HH:MM:SS
		"2024-01-01 04:00:00;4\n" // the only valid row

	prices, err := ParseFCRN(csvText)
	if err != nil {
		t.Fatalf("ParseFCRN: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("got %d prices, want 1: %v", len(prices), prices)
	}
	if got := prices["04:00:00"]; got != "4.00000" {
		t.Errorf("prices[04:00:00] = %q", got)
	}
}

func TestParseFCRNEmptyInput(t *testing.T) {
	prices, err := ParseFCRN("")
	if err != nil {
		t.Fatalf("ParseFCRN: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("got %d prices, want 0", len(prices))
	}
}

func TestMergePricesDerivation(t *testing.T) {
	records := []models.PriceRecord{
		{Timestamp: "2024-01-01T00:00:00Z", ImblSalesPrice: f(45), ImblSpotDifferencePrice: f(5)},
	}

	dayAhead, up, down := MergePrices(records)
	// 2024-01-01T00:00:00Z is 01:00:00 in Stockholm.
	if got := dayAhead["01:00:00"]; got != "40.00000" {
		t.Errorf("day_ahead = %q, want 40.00000", got)
	}
	if got := up["01:00:00"]; got != "45.00000" {
		t.Errorf("imbalance_up = %q, want 45.00000", got)
	}
	if got := down["01:00:00"]; got != "45.00000" {
		t.Errorf("imbalance_down = %q, want 45.00000", got)
	}
}

func TestMergePricesSkipsBadRecords(t *testing.T) {
	records := []models.PriceRecord{
		{Timestamp: "", TimestampUTC: ""},
		{Timestamp: "not a timestamp", ImblSalesPrice: f(45)},
		{TimestampUTC: "2024-01-01T01:00:00Z", ImblSalesPrice: f(30)}, // timestampUTC fallback
	}

	dayAhead, _, _ := MergePrices(records)
	if len(dayAhead) != 1 {
		t.Fatalf("got %d entries, want 1: %v", len(dayAhead), dayAhead)
	}
	if got := dayAhead["02:00:00"]; got != "30.00000" {
		t.Errorf("day_ahead = %q, want 30.00000", got)
	}
}

func TestAssemblePriceRowsKeyUnion(t *testing.T) {
	rows := AssemblePriceRows(models.PriceSeries{
		FCRN:          map[string]string{"00:00:00": "12.50000", "02:00:00": "13.00000"},
		DayAhead:      map[string]string{"01:00:00": "40.00000"},
		ImbalanceUp:   map[string]string{"01:00:00": "45.00000"},
		ImbalanceDown: map[string]string{"01:00:00": "45.00000"},
	})

	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0].Time != "00:00:00" || rows[1].Time != "01:00:00" || rows[2].Time != "02:00:00" {
		t.Errorf("rows out of order: %+v", rows)
	}

	// FCR-N-only key leaves the eSett-derived columns blank.
	if rows[0].FCRN != "12.50000" || rows[0].DayAhead != "" || rows[0].ImbalanceUp != "" || rows[0].ImbalanceDown != "" {
		t.Errorf("fcrn-only row wrong: %+v", rows[0])
	}
	// eSett-only key leaves fcrn blank.
	if rows[1].FCRN != "" || rows[1].DayAhead != "40.00000" {
		t.Errorf("esett-only row wrong: %+v", rows[1])
	}
}
