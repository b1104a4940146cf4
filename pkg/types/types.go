// Package domain defines the core business types for the card price watcher.
package domain

import (
	"github.com/shopspring/decimal"
)

// Price is a listing price in the currency's smallest unit.
type Price struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// Major renders the price in major currency units with two fractional
// digits. The conversion is exact: 1234 cents renders as "12.34".
func (p Price) Major() string {
	return decimal.New(p.Cents, -2).StringFixed(2)
}

// Seller describes the marketplace user offering a listing.
type Seller struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	CountryCode   string `json:"country_code"`
	CanSellViaHub bool   `json:"can_sell_via_hub"`
	UserType      string `json:"user_type,omitempty"`
}

// Properties holds the card-specific attributes of a listing.
type Properties struct {
	Condition       *Condition `json:"condition,omitempty"`
	Language        string     `json:"language,omitempty"`
	CollectorNumber string     `json:"collector_number,omitempty"`
	Rarity          string     `json:"rarity,omitempty"`
	Foil            *bool      `json:"foil,omitempty"`
	Signed          *bool      `json:"signed,omitempty"`
	Altered         *bool      `json:"altered,omitempty"`
}

// Listing is a single marketplace offer for a blueprint. Listings are
// produced fresh on every poll and are never persisted.
type Listing struct {
	ID            int64      `json:"id"`
	BlueprintID   int64      `json:"blueprint_id"`
	Name          string     `json:"name"`
	ExpansionName string     `json:"expansion_name,omitempty"`
	Price         Price      `json:"price"`
	Seller        Seller     `json:"seller"`
	Properties    Properties `json:"properties"`
	Quantity      int        `json:"quantity"`
	BundleSize    int        `json:"bundle_size"`
	OnVacation    bool       `json:"on_vacation"`
	Graded        *bool      `json:"graded,omitempty"`
}

// WatchTarget is the immutable configuration of one watched blueprint.
type WatchTarget struct {
	BlueprintID     int64      `json:"blueprint_id"`
	PriceLimit      int64      `json:"price_limit"`
	Language        *string    `json:"language,omitempty"`
	MinCondition    *Condition `json:"min_condition,omitempty"`
	CanOrderViaZero bool       `json:"can_order_via_zero"`
}

// WatchState tracks the best known listing for a target. A nil Best means
// no qualifying listing was seen on the most recent successful poll.
type WatchState struct {
	Best *Listing `json:"best,omitempty"`
}
