package woocommerce

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"lumen/internal/logger"
)

// Client talks to the WooCommerce REST API (v3) using consumer key/secret
// query authentication.
type Client struct {
	storeURL       string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
	logger         *logger.Logger
}

func NewClient(storeURL, consumerKey, consumerSecret string, log *logger.Logger) *Client {
	return &Client{
		storeURL:       strings.TrimRight(storeURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: log,
	}
}

// GetProducts fetches one page of products.
func (c *Client) GetProducts(page, perPage int) ([]Product, error) {
	var products []Product
	path := fmt.Sprintf("/wp-json/wc/v3/products?page=%d&per_page=%d", page, perPage)
	if err := c.get(path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetVariations fetches all variations of a variable product.
func (c *Client) GetVariations(productID int64) ([]Variation, error) {
	var variations []Variation
	path := fmt.Sprintf("/wp-json/wc/v3/products/%d/variations?per_page=100", productID)
	if err := c.get(path, &variations); err != nil {
		return nil, err
	}
	return variations, nil
}

func (c *Client) get(path string, out interface{}) error {
	url := c.storeURL + path

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("consumer_key", c.consumerKey)
	q.Set("consumer_secret", c.consumerSecret)
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
