// Package currency fetches and caches USD exchange rates and converts
// dollar P&L into the user's display currency. Rate lookups never fail:
// a live fetch falls back to the last cached snapshot, and with no
// cache to static rates bundled here. Stale data beats no data.
package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"trade-journal/internal/models"
)

// Supported is the closed set of display currencies.
var Supported = []string{"USD", "EUR", "GBP", "JPY", "CAD", "AUD", "CHF"}

// staticRates are the bundled last-resort rates, used when the API is
// unreachable and no snapshot has ever been cached.
var staticRates = models.ExchangeRates{
	"USD": 1.0,
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.50,
	"CAD": 1.36,
	"AUD": 1.52,
	"CHF": 0.88,
}

// Source records where a snapshot's rates came from.
type Source string

const (
	SourceLive   Source = "live"
	SourceCache  Source = "cache"
	SourceStatic Source = "static"
)

// Snapshot is an immutable rate table plus provenance. Refreshes
// replace the whole snapshot; readers never observe a partial update.
type Snapshot struct {
	Rates     models.ExchangeRates
	FetchedAt time.Time
	Source    Source
}

// Stale reports whether the snapshot did not come from a live fetch.
func (s Snapshot) Stale() bool {
	return s.Source != SourceLive
}

// Service owns the exchange-rate cache. Callers are expected to call
// Refresh on an hourly cadence, or run Start for a background loop;
// the hot calculation path only ever reads snapshots.
type Service struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
	cache   atomic.Pointer[Snapshot]
}

// NewService creates a rate service against exchangerate-api.com.
func NewService(log zerolog.Logger) *Service {
	return NewServiceURL("https://api.exchangerate-api.com/v4/latest", log)
}

// NewServiceURL creates a rate service against a custom endpoint.
func NewServiceURL(baseURL string, log zerolog.Logger) *Service {
	return &Service{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log.With().Str("service", "currency").Logger(),
	}
}

// Rates returns the current snapshot without touching the network.
// Before the first refresh this is the static fallback table.
func (s *Service) Rates() Snapshot {
	if snap := s.cache.Load(); snap != nil {
		return *snap
	}
	return Snapshot{Rates: staticRates, Source: SourceStatic}
}

// Refresh fetches fresh rates and atomically replaces the cache. It
// never fails outright: on fetch errors it returns the previous
// snapshot, or the static fallback when none exists. The returned
// snapshot's Source is the staleness flag.
func (s *Service) Refresh(ctx context.Context) Snapshot {
	rates, err := s.fetch(ctx)
	if err != nil {
		prev := s.Rates()
		s.log.Warn().Err(err).Str("source", string(prev.Source)).
			Msg("Rate fetch failed, keeping previous snapshot")
		if prev.Source == SourceLive {
			prev.Source = SourceCache
			s.cache.Store(&prev)
		}
		return s.Rates()
	}

	snap := Snapshot{Rates: rates, FetchedAt: time.Now(), Source: SourceLive}
	s.cache.Store(&snap)
	s.log.Info().Int("currencies", len(rates)).Msg("Exchange rates refreshed")
	return snap
}

// Start runs a refresh loop on the given interval until ctx is
// cancelled. An immediate refresh happens before the first tick.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	s.Refresh(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// fetch pulls the USD rate table and filters it to the supported set.
func (s *Service) fetch(ctx context.Context) (models.ExchangeRates, error) {
	url := s.baseURL + "/USD"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse rate response: %w", err)
	}

	rates := models.ExchangeRates{"USD": 1.0}
	for _, code := range Supported {
		if rate, ok := payload.Rates[code]; ok && rate > 0 {
			rates[code] = rate
		}
	}
	if len(rates) < 2 {
		return nil, fmt.Errorf("rate response missing supported currencies")
	}
	return rates, nil
}

// Convert converts a USD amount into the target currency using the
// given rates snapshot. USD is an exact identity: the input is returned
// untouched, with no multiply. Unknown currencies or missing rates also
// return the input unchanged.
func Convert(amountUSD float64, targetCurrency string, rates models.ExchangeRates) float64 {
	if targetCurrency == "" || targetCurrency == "USD" {
		return amountUSD
	}
	rate, ok := rates[targetCurrency]
	if !ok || rate <= 0 {
		if rate, ok = staticRates[targetCurrency]; !ok || rate <= 0 {
			return amountUSD
		}
	}
	return amountUSD * rate
}
