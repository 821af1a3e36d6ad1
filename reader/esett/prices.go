package esett

import (
	"context"
	"time"

	"gridio/logger"
	"gridio/models"
)

// FetchPrices retrieves imbalance settlement prices for the UTC window
// [start, end). Prices are fetched for a single bidding zone; the eSett
// price export is identical across Swedish zones for the day-ahead
// derivation, so SE3 stands in for the country.
func (c *Client) FetchPrices(ctx context.Context, start, end time.Time) ([]models.PriceRecord, error) {
	params := windowParams(start, end)
	params.Set("mba", c.config.Source.Esett.PriceMBA)

	var records []models.PriceRecord
	if err := c.getJSON(ctx, c.config.Source.Esett.PricesEndpoint, params, &records); err != nil {
		return nil, err
	}

	c.log.WithComponent("esett_reader").WithFields(logger.Fields{
		"export":  "prices",
		"records": len(records),
		"mba":     c.config.Source.Esett.PriceMBA,
	}).Info("fetched settlement prices")

	return records, nil
}
