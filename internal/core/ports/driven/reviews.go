package driven

import (
	"context"

	"github.com/shopscout-labs/shopscout-cli/internal/core/domain"
)

// ReviewStore looks up customer reviews by exact product ID.
// The store is opened read-only; it is never written by this system.
type ReviewStore interface {
	// ByProductID returns every review whose product ID matches,
	// in source (file) order. A product with no reviews returns an
	// empty slice, not an error.
	ByProductID(ctx context.Context, productID string) ([]domain.Review, error)

	// Close releases resources.
	Close() error
}
