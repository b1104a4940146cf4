// Package cardtrader provides a CardTrader marketplace API client abstracted
// behind interfaces for testability.
package cardtrader

import (
	"context"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// ProductsRequest defines the parameters for a marketplace products query.
// Either BlueprintID or ExpansionID must be set.
type ProductsRequest struct {
	BlueprintID int64
	ExpansionID int64
	Foil        *bool
	Language    string
}

// ListingSource returns the current marketplace listings for a blueprint.
// All failures (network, decoding, upstream rejection) are reported as a
// plain error; callers treat them identically.
type ListingSource interface {
	Fetch(ctx context.Context, blueprintID int64, language string) ([]domain.Listing, error)
}

// MarketplaceClient defines the raw marketplace products endpoint.
type MarketplaceClient interface {
	Products(ctx context.Context, req ProductsRequest) (map[string][]Product, error)
}
