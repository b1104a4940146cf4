package engine

import (
	"strings"

	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

// CountryBlacklist is the process-wide set of excluded seller countries.
// Lookups are case-insensitive.
type CountryBlacklist map[string]struct{}

// NewCountryBlacklist builds a blacklist from ISO country codes.
func NewCountryBlacklist(codes []string) CountryBlacklist {
	b := make(CountryBlacklist, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			b[c] = struct{}{}
		}
	}
	return b
}

// Contains reports whether code is blacklisted.
func (b CountryBlacklist) Contains(code string) bool {
	_, ok := b[strings.ToUpper(code)]
	return ok
}

// Qualifies reports whether a listing passes every filter of target.
func Qualifies(l *domain.Listing, target *domain.WatchTarget, blacklist CountryBlacklist) bool {
	if l.Price.Cents > target.PriceLimit {
		return false
	}
	if target.CanOrderViaZero && !l.Seller.CanSellViaHub {
		return false
	}
	if blacklist.Contains(l.Seller.CountryCode) {
		return false
	}
	if target.MinCondition != nil {
		if l.Properties.Condition == nil || !l.Properties.Condition.AtLeast(*target.MinCondition) {
			return false
		}
	}
	return true
}

// SelectBest returns the cheapest qualifying listing, or nil when none
// qualifies. Among equally priced listings the first one in source order
// wins. The returned listing is a copy.
func SelectBest(
	listings []domain.Listing,
	target *domain.WatchTarget,
	blacklist CountryBlacklist,
) *domain.Listing {
	var best *domain.Listing
	for i := range listings {
		l := &listings[i]
		if !Qualifies(l, target, blacklist) {
			continue
		}
		if best == nil || l.Price.Cents < best.Price.Cents {
			best = l
		}
	}
	if best == nil {
		return nil
	}
	selected := *best
	return &selected
}
