package product

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/wecare/foodcheck/pkg/model"
)

const offBaseURL = "https://world.openfoodfacts.org/api/v2/product"

// OFFClient fetches product records from the OpenFoodFacts API.
type OFFClient struct {
	client  *http.Client
	baseURL string
}

// NewOFFClient creates a client with the given request timeout.
func NewOFFClient(timeout time.Duration) *OFFClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OFFClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: offBaseURL,
	}
}

// FetchRaw retrieves the raw JSON payload for a barcode.
func (c *OFFClient) FetchRaw(barcode string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.json", c.baseURL, barcode)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "foodcheck/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OpenFoodFacts request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("product %s not found on OpenFoodFacts", barcode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenFoodFacts error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Fetch retrieves and normalizes the product for a barcode.
func (c *OFFClient) Fetch(barcode string) (*model.Product, error) {
	raw, err := c.FetchRaw(barcode)
	if err != nil {
		return nil, err
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if p.Barcode == "" {
		p.Barcode = barcode
	}
	return p, nil
}
