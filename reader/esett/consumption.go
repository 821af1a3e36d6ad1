package esett

import (
	"context"
	"time"

	"gridio/logger"
	"gridio/models"
)

// FetchConsumption retrieves per-zone consumption volumes for the UTC
// window [start, end) across all configured bidding zones.
func (c *Client) FetchConsumption(ctx context.Context, start, end time.Time) ([]models.ConsumptionRecord, error) {
	params := windowParams(start, end)
	for _, mba := range c.config.Source.Esett.MBACodes {
		params.Add("mba", mba)
	}

	var records []models.ConsumptionRecord
	if err := c.getJSON(ctx, c.config.Source.Esett.ConsumptionEndpoint, params, &records); err != nil {
		return nil, err
	}

	c.log.WithComponent("esett_reader").WithFields(logger.Fields{
		"export":  "consumption",
		"records": len(records),
		"zones":   len(c.config.Source.Esett.MBACodes),
	}).Info("fetched consumption volumes")

	return records, nil
}
