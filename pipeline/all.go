package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gridio/config"
	"gridio/internal/timeutil"
	"gridio/logger"
)

// domainRuns lists the three concurrent per-day domain pipelines.
var domainRuns = []struct {
	name string
	run  func(context.Context, *config.Config, string) error
}{
	{"production", RunProduction},
	{"consumption", RunConsumption},
	{"prices", RunPrices},
}

// RunAll drives the domain pipelines over an inclusive day range. Days
// run strictly in sequence; within a day the three domains run as
// independent concurrent tasks joined at a barrier. A failing domain does
// not stop its siblings or the remaining days, but any failure makes the
// aggregate result non-nil.
func RunAll(ctx context.Context, cfg *config.Config, startDay, endDay string) error {
	start, err := timeutil.ParseDay(startDay)
	if err != nil {
		return err
	}
	end := start
	if endDay != "" {
		if end, err = timeutil.ParseDay(endDay); err != nil {
			return err
		}
	}
	if end.Before(start) {
		return fmt.Errorf("end_day (%s) must be on or after start_day (%s)", endDay, startDay)
	}

	log := logger.GetLogger().WithComponent("driver")

	var failures []error
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayStr := day.Format("2006-01-02")
		log.WithFields(logger.Fields{"day": dayStr}).Info("starting day")

		var wg sync.WaitGroup
		var mu sync.Mutex
		dayStart := time.Now()

		for _, domain := range domainRuns {
			wg.Add(1)
			go func(name string, run func(context.Context, *config.Config, string) error) {
				defer wg.Done()
				if err := run(ctx, cfg, dayStr); err != nil {
					log.WithError(err).WithFields(logger.Fields{
						"day":    dayStr,
						"domain": name,
					}).Error("domain pipeline failed")
					mu.Lock()
					failures = append(failures, fmt.Errorf("%s %s: %w", name, dayStr, err))
					mu.Unlock()
				}
			}(domain.name, domain.run)
		}
		wg.Wait()

		log.WithFields(logger.Fields{
			"day":         dayStr,
			"duration_ms": time.Since(dayStart).Milliseconds(),
		}).Info("day completed")
	}

	return errors.Join(failures...)
}
