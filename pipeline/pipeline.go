// Package pipeline runs the per-domain day pipelines: resolve the local
// day window, fetch, normalize and merge, then write through every
// configured sink. Each invocation owns all of its state; nothing is
// shared between domains or days.
package pipeline

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"gridio/config"
	"gridio/logger"
	"gridio/writer"
)

// runLogger tags every entry of one pipeline invocation with a fresh run
// id so concurrent domain runs for the same day stay distinguishable.
func runLogger(domain, day string) *logger.Entry {
	return logger.GetLogger().WithComponent(domain + "_pipeline").WithFields(logger.Fields{
		"run_id": uuid.New().String(),
		"day":    day,
	})
}

func localSinks(cfg *config.Config) []writer.Sink {
	return []writer.Sink{
		writer.LocalSink{Root: cfg.Output.PublicRoot},
		writer.LocalSink{Root: cfg.Output.RawRoot},
	}
}

// archiveDay mirrors one assembled day table to S3 when the archive is
// enabled. Archive failures are reported, not swallowed: the caller
// treats them like any other write failure.
func archiveDay(ctx context.Context, cfg *config.Config, day, domain string, header []string, rows [][]string) error {
	if !cfg.Storage.S3.Enabled {
		return nil
	}
	archiver, err := writer.NewS3Archiver(ctx, cfg)
	if err != nil {
		return err
	}
	return archiver.ArchiveDay(ctx, day, domain, header, rows)
}

// formatVolume renders an accumulated volume with the shortest exact
// decimal representation.
func formatVolume(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
