// Package shiprocket implements a client for the ShipRocket external API,
// covering authentication and courier serviceability lookups.
package shiprocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/fulfillment-service/internal/circuitbreaker"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/metrics"
)

// DefaultBaseURL is the production ShipRocket API endpoint.
const DefaultBaseURL = "https://apiv2.shiprocket.in/v1/external"

// Tokens are valid for an hour; refresh a little early.
const tokenTTL = 55 * time.Minute

// Config holds the client configuration.
type Config struct {
	BaseURL  string
	Email    string
	Password string
	// Timeout bounds each HTTP call. Defaults to 5 seconds.
	Timeout time.Duration
}

// Client talks to the ShipRocket API. The auth token is cached and shared
// across goroutines; serviceability calls run behind a circuit breaker so a
// degraded upstream does not stall request fan-outs.
type Client struct {
	baseURL    string
	email      string
	password   string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	logger     zerolog.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a ShipRocket client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	breakerCfg := circuitbreaker.DefaultConfig()
	breakerCfg.Name = "shiprocket"
	return &Client{
		baseURL:    cfg.BaseURL,
		email:      cfg.Email,
		password:   cfg.Password,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    circuitbreaker.New(breakerCfg),
		logger:     logger.With().Str("component", "shiprocket").Logger(),
	}
}

// Healthy reports whether the provider circuit is closed.
func (c *Client) Healthy() bool {
	return c.breaker.Healthy()
}

// Breaker exposes the provider circuit breaker for health monitoring.
func (c *Client) Breaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Token returns a valid auth token, refreshing it when the cached one has
// expired.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	body, err := json.Marshal(map[string]string{
		"email":    c.email,
		"password": c.password,
	})
	if err != nil {
		return "", fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("shiprocket login: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("shiprocket login: unexpected status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decode login response: %w", err)
	}
	if tr.Token == "" {
		return "", fmt.Errorf("shiprocket login: empty token")
	}

	metrics.RecordProviderRequest("login", "success")
	c.token = tr.Token
	c.tokenExpiry = time.Now().Add(tokenTTL)
	c.logger.Debug().Msg("refreshed shiprocket token")
	return c.token, nil
}

// courier is the wire form of one serviceable courier company.
type courier struct {
	CourierCompanyID      int64   `json:"courier_company_id"`
	CourierName           string  `json:"courier_name"`
	Rate                  float64 `json:"rate"`
	FreightCharge         float64 `json:"freight_charge"`
	CODCharges            float64 `json:"cod_charges"`
	EstimatedDeliveryDays string  `json:"estimated_delivery_days"`
	MinWeight             float64 `json:"min_weight"`
	Rating                float64 `json:"rating"`
}

type serviceabilityResponse struct {
	Status int `json:"status"`
	Data   struct {
		AvailableCourierCompanies []courier `json:"available_courier_companies"`
	} `json:"data"`
}

// AvailableCouriers lists the couriers that can carry a shipment of the
// given weight between two postcodes. An empty slice with a nil error means
// the route is not serviceable at that weight.
func (c *Client) AvailableCouriers(ctx context.Context, pickupPostcode, deliveryPostcode string, cod bool, weightKg decimal.Decimal) ([]model.CourierOption, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("pickup_postcode", pickupPostcode)
	params.Set("delivery_postcode", deliveryPostcode)
	params.Set("weight", weightKg.String())
	if cod {
		params.Set("cod", "1")
	} else {
		params.Set("cod", "0")
	}

	endpoint := c.baseURL + "/courier/serviceability/?" + params.Encode()

	var sr serviceabilityResponse
	err = c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
		if err != nil {
			return fmt.Errorf("build serviceability request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("shiprocket serviceability: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		// 404 is how the API reports an unserviceable route.
		if resp.StatusCode == http.StatusNotFound {
			sr = serviceabilityResponse{}
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("shiprocket serviceability: unexpected status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&sr)
	})
	if err != nil {
		metrics.RecordProviderRequest("serviceability", "error")
		return nil, err
	}
	metrics.RecordProviderRequest("serviceability", "success")

	options := make([]model.CourierOption, 0, len(sr.Data.AvailableCourierCompanies))
	for _, cc := range sr.Data.AvailableCourierCompanies {
		options = append(options, model.CourierOption{
			CourierCompanyID:      cc.CourierCompanyID,
			Name:                  cc.CourierName,
			Rate:                  decimal.NewFromFloat(cc.Rate),
			FreightCharge:         decimal.NewFromFloat(cc.FreightCharge),
			CODCharge:             decimal.NewFromFloat(cc.CODCharges),
			EstimatedDeliveryDays: cc.EstimatedDeliveryDays,
			MinWeightKg:           decimal.NewFromFloat(cc.MinWeight),
			Rating:                cc.Rating,
		})
	}
	return options, nil
}
