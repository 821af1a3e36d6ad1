package pipeline

import (
	"fmt"
	"io"
	"os"

	"gridio/config"
	"gridio/logger"
	"gridio/processor"
	"gridio/writer"
)

// RunFrequency splits the combined frequency export into one
// frequency.csv per calendar day under the frequency output root. It
// reports per-day row counts in day order plus the number of skipped
// malformed rows.
func RunFrequency(cfg *config.Config) error {
	log := runLogger("frequency", "")

	input, err := os.Open(cfg.Frequency.Input)
	if err != nil {
		return fmt.Errorf("input file does not exist: %s", cfg.Frequency.Input)
	}
	defer input.Close()

	sink := writer.LocalSink{Root: cfg.Frequency.OutputRoot}
	split, err := processor.SplitFrequency(input, func(day string) (io.WriteCloser, error) {
		return sink.Create(day, "frequency")
	})
	if err != nil {
		return err
	}

	for _, day := range split.Days() {
		log.WithFields(logger.Fields{
			"rows":        split.RowsByDay[day],
			"destination": sink.Path(day, "frequency"),
		}).Info(fmt.Sprintf("wrote %d rows to %s", split.RowsByDay[day], sink.Path(day, "frequency")))
	}
	if split.SkippedRows > 0 {
		log.WithFields(logger.Fields{"skipped": split.SkippedRows}).Warn(fmt.Sprintf("skipped %d malformed rows", split.SkippedRows))
	}
	logger.GetLogger().LogMetric("frequency_pipeline", "days_written", float64(len(split.RowsByDay)), nil)
	return nil
}
