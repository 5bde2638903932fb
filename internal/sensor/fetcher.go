// Package sensor fetches live room→CO₂ snapshots from the external
// measurement site.
package sensor

import (
	"context"

	"co2watch/internal/models"
)

// Fetcher produces a fresh sensor snapshot. A failed fetch aborts the whole
// check; no partial snapshot is ever returned alongside an error.
type Fetcher interface {
	FetchSnapshot(ctx context.Context) (models.SensorSnapshot, error)
}
