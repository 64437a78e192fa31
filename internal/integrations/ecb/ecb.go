package ecb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/fintrack/internal/config"
	"github.com/Dan9191/fintrack/internal/models"
)

const BaseCurrency = "EUR"

// Client reads the European Central Bank daily reference rates feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new ECB client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// sendRequest downloads the raw feed
func (c *Client) sendRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("ECB XML response: %d bytes", len(body))
	return body, nil
}

// ParseRates extracts the dated cube of currency rates from the feed
func ParseRates(rawBody []byte) (*models.ExchangeRates, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	dated := doc.FindElement("//Cube[@time]")
	if dated == nil {
		return nil, fmt.Errorf("no dated rate cube found in XML")
	}

	rates := &models.ExchangeRates{
		Base:  BaseCurrency,
		Date:  dated.SelectAttrValue("time", ""),
		Rates: map[string]float64{BaseCurrency: 1},
	}
	for _, cube := range dated.SelectElements("Cube") {
		currency := strings.ToUpper(cube.SelectAttrValue("currency", ""))
		if currency == "" {
			continue
		}
		rate, err := strconv.ParseFloat(cube.SelectAttrValue("rate", ""), 64)
		if err != nil || rate <= 0 {
			return nil, fmt.Errorf("invalid rate for %s: %q", currency, cube.SelectAttrValue("rate", ""))
		}
		rates.Rates[currency] = rate
	}
	if len(rates.Rates) == 1 {
		return nil, fmt.Errorf("no currency rates found in XML")
	}
	return rates, nil
}

// Latest retrieves the current reference rates
func (c *Client) Latest(ctx context.Context) (*models.ExchangeRates, error) {
	body, err := c.sendRequest(ctx)
	if err != nil {
		return nil, err
	}

	rates, err := ParseRates(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved %d ECB reference rates for %s", len(rates.Rates)-1, rates.Date)
	return rates, nil
}
