// Package novaposhta is the client for the Nova Poshta address-lookup API
// used by courier delivery: settlement search plus branch listing.
package novaposhta

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultAPIURL = "https://api.novaposhta.ua/v2.0/json/"

// WarehouseTypeBranch narrows getWarehouses to regular branches, matching
// what the checkout form offers.
const WarehouseTypeBranch = "9a68df70-0267-42a8-bb5c-37f427e36ee4"

// MinQueryLength is the city-search threshold: shorter inputs issue no
// request at all.
const MinQueryLength = 2

var ErrAPIKeyMissing = errors.New("novaposhta: API key is not configured")

// City is one settlement suggestion.
type City struct {
	Description    string `json:"Description"`
	Ref            string `json:"Ref"`
	SettlementType string `json:"SettlementTypeDescription,omitempty"`
}

// Warehouse is one branch of the selected city.
type Warehouse struct {
	Description string `json:"Description"`
	Ref         string `json:"Ref"`
}

type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
}

func NewClient(apiURL, apiKey string) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope is the uniform request body: every call carries the key, the
// model and method names, and the method's own properties.
type envelope struct {
	APIKey           string `json:"apiKey"`
	ModelName        string `json:"modelName"`
	CalledMethod     string `json:"calledMethod"`
	MethodProperties any    `json:"methodProperties"`
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func (c *Client) request(ctx context.Context, modelName, calledMethod string, props map[string]string, out any) error {
	if c.apiKey == "" {
		return ErrAPIKeyMissing
	}

	payload, err := json.Marshal(envelope{
		APIKey:           c.apiKey,
		ModelName:        modelName,
		CalledMethod:     calledMethod,
		MethodProperties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("nova poshta request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nova poshta returned status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode nova poshta response: %w", err)
	}
	if !body.Success {
		if msg := strings.Join(body.Errors, ", "); msg != "" {
			return errors.New(msg)
		}
		return errors.New("nova poshta: unknown API error")
	}
	if out != nil && len(body.Data) > 0 {
		if err := json.Unmarshal(body.Data, out); err != nil {
			return fmt.Errorf("failed to decode nova poshta data: %w", err)
		}
	}
	return nil
}

type settlementAddress struct {
	Present                   string `json:"Present"`
	Ref                       string `json:"Ref"`
	SettlementTypeDescription string `json:"SettlementTypeDescription"`
}

type settlementSearchResult struct {
	Addresses []settlementAddress `json:"Addresses"`
}

// SearchCities returns settlement suggestions for a partial city name.
// Queries shorter than MinQueryLength return nothing without touching the
// network.
func (c *Client) SearchCities(ctx context.Context, query string) ([]City, error) {
	if len([]rune(query)) < MinQueryLength {
		return nil, nil
	}

	var results []settlementSearchResult
	err := c.request(ctx, "Address", "searchSettlements", map[string]string{
		"CityName": query,
		"Limit":    "10",
	}, &results)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	cities := make([]City, 0, len(results[0].Addresses))
	for _, addr := range results[0].Addresses {
		cities = append(cities, City{
			Description:    addr.Present,
			Ref:            addr.Ref,
			SettlementType: addr.SettlementTypeDescription,
		})
	}
	return cities, nil
}

// GetWarehouses lists the selected settlement's branches.
func (c *Client) GetWarehouses(ctx context.Context, cityRef string) ([]Warehouse, error) {
	var warehouses []Warehouse
	err := c.request(ctx, "Address", "getWarehouses", map[string]string{
		"SettlementRef":      cityRef,
		"TypeOfWarehouseRef": WarehouseTypeBranch,
		"Limit":              "200",
	}, &warehouses)
	if err != nil {
		return nil, err
	}
	return warehouses, nil
}
