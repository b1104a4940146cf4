package cardtrader

import (
	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// ToListings converts marketplace products into domain listings, keeping
// the order of the API response.
func ToListings(products []Product) []domain.Listing {
	listings := make([]domain.Listing, 0, len(products))
	for i := range products {
		listings = append(listings, toListing(&products[i]))
	}
	return listings
}

func toListing(p *Product) domain.Listing {
	l := domain.Listing{
		ID:            p.ID,
		BlueprintID:   p.BlueprintID,
		Name:          p.NameEn,
		ExpansionName: p.Expansion.NameEn,
		Price: domain.Price{
			Cents:    p.Price.Cents,
			Currency: p.Price.Currency,
		},
		Seller: domain.Seller{
			ID:            p.User.ID,
			Username:      p.User.Username,
			CountryCode:   p.User.CountryCode,
			CanSellViaHub: p.User.CanSellViaHub,
			UserType:      p.User.UserType,
		},
		Quantity:   p.Quantity,
		BundleSize: p.BundleSize,
		OnVacation: p.OnVacation,
		Graded:     p.Graded,
	}

	props := &p.Properties

	// An unrecognized condition is treated as unknown rather than failing
	// the whole response.
	if props.Condition != nil {
		if c, err := domain.ParseCondition(*props.Condition); err == nil {
			l.Properties.Condition = &c
		}
	}
	if props.MTGLanguage != nil {
		l.Properties.Language = *props.MTGLanguage
	}
	if props.CollectorNumber != nil {
		l.Properties.CollectorNumber = *props.CollectorNumber
	}
	if props.MTGRarity != nil {
		l.Properties.Rarity = *props.MTGRarity
	}
	l.Properties.Foil = props.MTGFoil
	l.Properties.Signed = props.Signed
	l.Properties.Altered = props.Altered

	return l
}
