package engine

import (
	"io"
	"log/slog"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func condPtr(c domain.Condition) *domain.Condition { return &c }

func strPtr(s string) *string { return &s }

// listing builds a hub-capable German listing with the given id and price.
func listing(id, cents int64, name string) domain.Listing {
	return domain.Listing{
		ID:          id,
		BlueprintID: 42,
		Name:        name,
		Price:       domain.Price{Cents: cents, Currency: "EUR"},
		Seller: domain.Seller{
			ID:            id * 10,
			Username:      "seller",
			CountryCode:   "DE",
			CanSellViaHub: true,
		},
		Quantity: 1,
	}
}
