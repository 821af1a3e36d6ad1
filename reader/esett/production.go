package esett

import (
	"context"
	"time"

	"gridio/logger"
	"gridio/models"
)

// FetchProduction retrieves per-zone production volumes for the UTC
// window [start, end) across all configured bidding zones.
func (c *Client) FetchProduction(ctx context.Context, start, end time.Time) ([]models.ProductionRecord, error) {
	params := windowParams(start, end)
	for _, mba := range c.config.Source.Esett.MBACodes {
		params.Add("mba", mba)
	}

	var records []models.ProductionRecord
	if err := c.getJSON(ctx, c.config.Source.Esett.ProductionEndpoint, params, &records); err != nil {
		return nil, err
	}

	c.log.WithComponent("esett_reader").WithFields(logger.Fields{
		"export":  "production",
		"records": len(records),
		"zones":   len(c.config.Source.Esett.MBACodes),
	}).Info("fetched production volumes")

	return records, nil
}
