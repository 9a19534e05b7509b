package fetcher

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/Kimcabron/Scraper-Vet/internal/config"
	"github.com/Kimcabron/Scraper-Vet/internal/observability"
)

// Fetcher drives a single headless browser page. All navigations share the
// same tab; callers are expected to be sequential.
type Fetcher struct {
	browser     *rod.Browser
	page        *rod.Page
	cfg         *config.Config
	logger      *observability.Logger
	rateLimiter *RateLimiter
	consent     []string
}

func New(cfg *config.Config, consentSelectors []string, logger *observability.Logger) (*Fetcher, error) {
	l := launcher.New().Headless(cfg.Browser.Headless)
	if cfg.Browser.ChromePath != "" {
		l = l.Bin(cfg.Browser.ChromePath)
	}

	// Chrome flags for Docker compatibility
	l = l.Set("no-sandbox")
	l = l.Set("disable-gpu")
	l = l.Set("disable-dev-shm-usage")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if cfg.Browser.UserAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: cfg.Browser.UserAgent}); err != nil {
			logger.Warn("Failed to set user agent", "error", err.Error())
		}
	}

	return &Fetcher{
		browser:     browser,
		page:        page,
		cfg:         cfg,
		logger:      logger,
		rateLimiter: NewRateLimiter(cfg.Pacing.MaxConcurrentPerHost, cfg.Pacing.RPM, cfg.GetPageInterval()),
		consent:     consentSelectors,
	}, nil
}

// Fetch navigates to urlStr and returns the settled page HTML.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	// Apply rate limiting
	if err := f.rateLimiter.Wait(ctx, parsedURL.Host); err != nil {
		return "", fmt.Errorf("rate limit error: %w", err)
	}

	// Navigate with retries
	var lastErr error
	for attempt := 0; attempt <= f.cfg.Retry.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := f.calculateBackoff(attempt)
			f.logger.Warn("Retrying navigation",
				"url", urlStr,
				"attempt", attempt,
				"backoff", backoff.String(),
			)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		html, err := f.fetchOnce(ctx, urlStr)
		if err != nil {
			lastErr = err
			continue
		}
		return html, nil
	}

	return "", fmt.Errorf("fetch %s failed after %d retries: %w", urlStr, f.cfg.Retry.MaxRetries, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, urlStr string) (string, error) {
	page := f.page.Context(ctx).Timeout(f.cfg.GetPageTimeout())

	if err := page.Navigate(urlStr); err != nil {
		return "", fmt.Errorf("navigate: %w", err)
	}
	if err := page.Timeout(f.cfg.GetWaitLoadTimeout()).WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}

	// Lazy-loaded result cards settle a moment after load
	if delay := f.cfg.GetDOMStableDelay(); delay > 0 {
		if err := page.WaitDOMStable(delay, 0.1); err != nil {
			f.logger.Debug("DOM did not stabilize, reading page anyway",
				"url", urlStr,
				"error", err.Error(),
			)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page HTML: %w", err)
	}
	return html, nil
}

// DismissConsent tente de fermer la bannière cookies. Meilleur effort: si
// aucun sélecteur ne répond dans la fenêtre impartie, on logue et on continue.
func (f *Fetcher) DismissConsent(ctx context.Context) error {
	for _, selector := range f.consent {
		el, err := f.page.Context(ctx).Timeout(f.cfg.GetConsentWait()).Element(selector)
		if err != nil {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			f.logger.Warn("Consent click failed", "selector", selector, "error", err.Error())
			continue
		}
		f.logger.Info("Consent banner dismissed", "selector", selector)
		return nil
	}

	f.logger.Info("No consent banner found, continuing")
	return nil
}

// Close shuts the browser down. Safe to call from a deferred cleanup path.
func (f *Fetcher) Close() {
	if f.browser != nil {
		if err := f.browser.Close(); err != nil {
			f.logger.Warn("Failed to close browser", "error", err.Error())
		}
	}
}

func (f *Fetcher) calculateBackoff(attempt int) time.Duration {
	minMS := f.cfg.Retry.BackoffMinMS
	maxMS := f.cfg.Retry.BackoffMaxMS
	jitterPct := f.cfg.Retry.JitterPct

	// Exponential backoff: min * 2^attempt
	exponential := minMS * (1 << uint(attempt-1))
	if exponential > maxMS {
		exponential = maxMS
	}

	// Apply jitter: ±jitterPct%
	jitterRange := float64(exponential) * float64(jitterPct) / 100
	jitter := (rand.Float64() - 0.5) * 2 * jitterRange
	finalMS := float64(exponential) + jitter

	if finalMS < float64(minMS) {
		finalMS = float64(minMS)
	}

	return time.Duration(math.Max(finalMS, 0)) * time.Millisecond
}
