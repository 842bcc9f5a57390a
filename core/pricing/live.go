// Package pricing - Live rate cards
// Live prices are optional. A failed fetch is logged and counted, and the
// registry keeps serving the offline tables.
package pricing

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"infra-tco/core/types"
	"infra-tco/internal/errors"
)

// RateCardOverride replaces the default compute, storage and network rates
// of one provider region
type RateCardOverride struct {
	Provider    types.CloudProvider  `json:"provider"`
	Region      string               `json:"region"`
	Currency    types.Currency       `json:"currency,omitempty"`
	Compute     types.ComputePricing `json:"compute"`
	Storage     types.StoragePricing `json:"storage"`
	Network     types.NetworkPricing `json:"network"`
	RetrievedAt time.Time            `json:"retrieved_at"`
}

// RateSource fetches a live rate card
type RateSource interface {
	Fetch(ctx context.Context, provider types.CloudProvider, region string) (*RateCardOverride, error)
}

// StatusError is a non-200 response from a rate source
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rate source %s returned HTTP %d", e.URL, e.StatusCode)
}

// Retryable reports whether the request may succeed when repeated
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// HTTPRateSource fetches rate cards from GET {endpoint}/rates/{provider}/{region}
type HTTPRateSource struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPRateSource creates an HTTP rate source
func NewHTTPRateSource(endpoint, apiKey string, timeout time.Duration) *HTTPRateSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPRateSource{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the rate card for provider and region
func (s *HTTPRateSource) Fetch(ctx context.Context, provider types.CloudProvider, region string) (*RateCardOverride, error) {
	u, err := url.JoinPath(s.endpoint, "rates", string(provider), region)
	if err != nil {
		return nil, errors.Config("invalid rate source endpoint", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Network("failed to build rate request", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Network("rate request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: u}
	}

	var out RateCardOverride
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Parsing("invalid rate card payload", err)
	}
	out.Provider = provider
	out.Region = region
	if out.RetrievedAt.IsZero() {
		out.RetrievedAt = time.Now().UTC()
	}
	return &out, nil
}

var (
	refreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tco",
		Name:      "rate_refresh_total",
		Help:      "Live rate card refresh attempts by provider and result.",
	}, []string{"provider", "result"})

	refreshDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tco",
		Name:      "rate_refresh_duration_seconds",
		Help:      "Duration of live rate card refreshes including retries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})
)

// Collectors returns the live pricing metrics for registration
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{refreshTotal, refreshDuration}
}

// Target is one provider region to keep refreshed
type Target struct {
	Provider types.CloudProvider
	Region   string
}

// RefresherConfig controls live refresh behaviour
type RefresherConfig struct {
	// TTL is how long a fetched rate card stays valid
	TTL time.Duration

	// Timeout bounds one refresh including retries
	Timeout time.Duration

	// Parallelism bounds concurrent refreshes in RefreshAll
	Parallelism int
}

// DefaultRefresherConfig returns the default refresh settings
func DefaultRefresherConfig() RefresherConfig {
	return RefresherConfig{
		TTL:         6 * time.Hour,
		Timeout:     30 * time.Second,
		Parallelism: 4,
	}
}

// Refresher keeps a TTL cache of live rate cards. It implements OverrideSource.
type Refresher struct {
	sources map[types.CloudProvider]RateSource
	cfg     RefresherConfig
	cache   *cache.Cache
	group   singleflight.Group
	logger  *zap.Logger
}

// NewRefresher creates a refresher over per-provider sources
func NewRefresher(sources map[types.CloudProvider]RateSource, cfg RefresherConfig, logger *zap.Logger) *Refresher {
	def := DefaultRefresherConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = def.Parallelism
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refresher{
		sources: sources,
		cfg:     cfg,
		cache:   cache.New(cfg.TTL, cfg.TTL),
		logger:  logger.Named("live-pricing"),
	}
}

func cacheKey(provider types.CloudProvider, region string) string {
	return string(provider) + "/" + region
}

// Lookup returns a cached, unexpired rate card
func (r *Refresher) Lookup(provider types.CloudProvider, region string) (*RateCardOverride, bool) {
	v, ok := r.cache.Get(cacheKey(provider, region))
	if !ok {
		return nil, false
	}
	o, ok := v.(*RateCardOverride)
	return o, ok
}

// Refresh fetches one rate card with retries and caches it.
// Concurrent calls for the same provider region share one fetch.
func (r *Refresher) Refresh(ctx context.Context, provider types.CloudProvider, region string) (*RateCardOverride, error) {
	src, ok := r.sources[provider]
	if !ok {
		return nil, errors.NotFound("rate source", provider.String())
	}

	key := cacheKey(provider, region)
	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		start := time.Now()
		defer func() {
			refreshDuration.WithLabelValues(string(provider)).Observe(time.Since(start).Seconds())
		}()

		ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()

		var card *RateCardOverride
		op := func() error {
			var err error
			card, err = src.Fetch(ctx, provider, region)
			if err == nil {
				return nil
			}
			var se *StatusError
			if stderrors.As(err, &se) && !se.Retryable() {
				return backoff.Permanent(err)
			}
			if errors.IsType(err, errors.TypeParsing) || errors.IsType(err, errors.TypeConfig) {
				return backoff.Permanent(err)
			}
			return err
		}
		notify := func(err error, wait time.Duration) {
			r.logger.Debug("rate fetch failed, retrying",
				zap.String("provider", provider.String()),
				zap.String("region", region),
				zap.Duration("wait", wait),
				zap.Error(err),
			)
		}

		policy := backoff.NewExponentialBackOff()
		policy.InitialInterval = 200 * time.Millisecond
		policy.MaxElapsedTime = r.cfg.Timeout
		if err := backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify); err != nil {
			return nil, err
		}

		r.cache.Set(key, card, cache.DefaultExpiration)
		return card, nil
	})
	if err != nil {
		refreshTotal.WithLabelValues(string(provider), "failure").Inc()
		return nil, err
	}
	refreshTotal.WithLabelValues(string(provider), "success").Inc()
	return v.(*RateCardOverride), nil
}

// RefreshAll refreshes targets in parallel. Failures are logged and counted;
// it returns the number of rate cards refreshed.
func (r *Refresher) RefreshAll(ctx context.Context, targets []Target) int {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Parallelism)

	results := make([]bool, len(targets))
	for i, t := range targets {
		g.Go(func() error {
			if _, err := r.Refresh(ctx, t.Provider, t.Region); err != nil {
				r.logger.Warn("live rate refresh failed, using default rates",
					zap.String("provider", t.Provider.String()),
					zap.String("region", t.Region),
					zap.Error(err),
				)
				return nil
			}
			results[i] = true
			return nil
		})
	}
	_ = g.Wait()

	n := 0
	for _, ok := range results {
		if ok {
			n++
		}
	}
	return n
}

// Run refreshes targets immediately and then every interval until ctx is done
func (r *Refresher) Run(ctx context.Context, targets []Target, interval time.Duration) {
	if len(targets) == 0 {
		return
	}
	r.logger.Info("live rate refresh started",
		zap.Int("targets", len(targets)),
		zap.Duration("interval", interval),
	)

	r.RefreshAll(ctx, targets)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := r.RefreshAll(ctx, targets)
			r.logger.Debug("live rate refresh complete", zap.Int("refreshed", n), zap.Int("targets", len(targets)))
		}
	}
}
