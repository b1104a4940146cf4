package cardtrader

// Product is a single marketplace offer as returned by the products endpoint.
type Product struct {
	ID          int64      `json:"id"`
	BlueprintID int64      `json:"blueprint_id"`
	NameEn      string     `json:"name_en"`
	Quantity    int        `json:"quantity"`
	Price       Price      `json:"price"`
	Description *string    `json:"description"`
	Properties  Properties `json:"properties_hash"`
	Expansion   Expansion  `json:"expansion"`
	User        User       `json:"user"`
	Graded      *bool      `json:"graded"`
	OnVacation  bool       `json:"on_vacation"`
	BundleSize  int        `json:"bundle_size"`
}

// Price is a product price in cents.
type Price struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// Properties holds the game-specific product attributes. Every field is
// optional in the API response.
type Properties struct {
	Condition       *string `json:"condition"`
	CollectorNumber *string `json:"collector_number"`
	TournamentLegal *bool   `json:"tournament_legal"`
	Signed          *bool   `json:"signed"`
	MTGCardColors   *string `json:"mtg_card_colors"`
	MTGFoil         *bool   `json:"mtg_foil"`
	MTGRarity       *string `json:"mtg_rarity"`
	MTGLanguage     *string `json:"mtg_language"`
	Altered         *bool   `json:"altered"`
}

// User is the seller of a product.
type User struct {
	ID                       int64  `json:"id"`
	Username                 string `json:"username"`
	CanSellViaHub            bool   `json:"can_sell_via_hub"`
	CountryCode              string `json:"country_code"`
	UserType                 string `json:"user_type"`
	MaxSellableIn24hQuantity *int   `json:"max_sellable_in24h_quantity"`
}

// Expansion identifies the set a product belongs to.
type Expansion struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	NameEn string `json:"name_en"`
}
