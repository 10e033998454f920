package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CurrencyServiceInterface converts between ISO currencies. Conversion is
// best-effort by contract: identity when base == quote and a 1:1 fallback
// when the rate provider fails, so it can never fail the pipeline.
type CurrencyServiceInterface interface {
	Rate(base, quote string) float64
	Convert(amount float64, base, quote string) float64
}

const exchangeRateURL = "https://api.exchangerate-api.com/v4/latest/%s"

type CurrencyService struct {
	client  *http.Client
	baseURL string
	ttl     time.Duration
	cache   *lru.Cache[string, float64]
}

func NewCurrencyService() CurrencyServiceInterface {
	// rates move slowly; an hour of staleness is fine for trip budgeting
	return newCurrencyService(exchangeRateURL, 5*time.Second, time.Hour)
}

func newCurrencyService(baseURL string, timeout, ttl time.Duration) *CurrencyService {
	cache, _ := lru.New[string, float64](256)
	return &CurrencyService{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		ttl:     ttl,
		cache:   cache,
	}
}

func (c *CurrencyService) Rate(base, quote string) float64 {
	base = strings.ToUpper(base)
	quote = strings.ToUpper(quote)
	if base == quote {
		return 1
	}

	// the stamp busts the cache once per ttl window
	stamp := time.Now().Unix() / int64(c.ttl.Seconds())
	key := fmt.Sprintf("%s->%s@%d", base, quote, stamp)
	if rate, ok := c.cache.Get(key); ok {
		return rate
	}

	rate := c.fetchRate(base, quote)
	c.cache.Add(key, rate)
	return rate
}

func (c *CurrencyService) fetchRate(base, quote string) float64 {
	resp, err := c.client.Get(fmt.Sprintf(c.baseURL, base))
	if err != nil {
		log.Printf("Currency rate fetch failed for %s->%s: %v", base, quote, err)
		return 1
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("Currency rate fetch failed for %s->%s: status %d", base, quote, resp.StatusCode)
		return 1
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("Currency rate decode failed for %s->%s: %v", base, quote, err)
		return 1
	}
	rate, ok := payload.Rates[quote]
	if !ok || rate <= 0 {
		log.Printf("Currency %s not found in rates for base %s", quote, base)
		return 1
	}
	return rate
}

// Convert converts amount from base to quote, rounded half-up to cents.
func (c *CurrencyService) Convert(amount float64, base, quote string) float64 {
	return math.Round(amount*c.Rate(base, quote)*100) / 100
}
