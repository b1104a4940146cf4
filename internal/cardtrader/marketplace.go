package cardtrader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/card-price-watcher/internal/metrics"
	domain "github.com/donaldgifford/card-price-watcher/pkg/types"
)

const (
	defaultBaseURL   = "https://api.cardtrader.com/api/v2"
	defaultUserAgent = "card-price-watcher"
	productsPath     = "/marketplace/products"
	cardURLTemplate  = "https://www.cardtrader.com/cards/%d"
)

var (
	// ErrMissingSelector is returned when a products request names neither
	// a blueprint nor an expansion.
	ErrMissingSelector = errors.New("either blueprint_id or expansion_id has to be specified")

	// ErrUnexpectedStatus is returned for any non-200 marketplace response.
	ErrUnexpectedStatus = errors.New("unexpected marketplace status")
)

// Client implements MarketplaceClient and ListingSource against the
// CardTrader v2 API.
type Client struct {
	token     string
	baseURL   string
	userAgent string
	client    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithUserAgent sets the User-Agent sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a CardTrader API client authenticating with the given
// bearer token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:     token,
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CardURL returns the public marketplace page for a blueprint.
func CardURL(blueprintID int64) string {
	return fmt.Sprintf(cardURLTemplate, blueprintID)
}

// Fetch implements ListingSource. It returns the listings for blueprintID in
// the order the marketplace reported them.
func (c *Client) Fetch(
	ctx context.Context,
	blueprintID int64,
	language string,
) ([]domain.Listing, error) {
	products, err := c.Products(ctx, ProductsRequest{
		BlueprintID: blueprintID,
		Language:    language,
	})
	if err != nil {
		return nil, err
	}

	listings := ToListings(products[strconv.FormatInt(blueprintID, 10)])
	metrics.ListingsReceivedTotal.Add(float64(len(listings)))
	return listings, nil
}

// Products implements MarketplaceClient by querying the products endpoint.
// The response maps blueprint ids to their listings.
func (c *Client) Products(
	ctx context.Context,
	req ProductsRequest,
) (map[string][]Product, error) {
	if req.BlueprintID == 0 && req.ExpansionID == 0 {
		return nil, ErrMissingSelector
	}

	start := time.Now()
	metrics.MarketplaceRequestsTotal.Inc()
	defer func() {
		metrics.MarketplaceRequestDuration.Observe(time.Since(start).Seconds())
	}()

	products, err := c.doProducts(ctx, req)
	if err != nil {
		metrics.MarketplaceErrorsTotal.Inc()
		return nil, err
	}
	return products, nil
}

func (c *Client) doProducts(
	ctx context.Context,
	req ProductsRequest,
) (map[string][]Product, error) {
	u := c.buildProductsURL(req)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing products request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf(
			"%w (status %d): %s",
			ErrUnexpectedStatus,
			resp.StatusCode,
			string(body),
		)
	}

	var products map[string][]Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("parsing products response: %w", err)
	}

	return products, nil
}

func (c *Client) buildProductsURL(req ProductsRequest) string {
	params := url.Values{}

	if req.BlueprintID != 0 {
		params.Set("blueprint_id", strconv.FormatInt(req.BlueprintID, 10))
	}
	if req.ExpansionID != 0 {
		params.Set("expansion_id", strconv.FormatInt(req.ExpansionID, 10))
	}
	if req.Foil != nil {
		params.Set("foil", strconv.FormatBool(*req.Foil))
	}
	if req.Language != "" {
		params.Set("language", req.Language)
	}

	return c.baseURL + productsPath + "?" + params.Encode()
}
