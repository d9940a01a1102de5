package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/cioinsight/deckgen/internal/model"
)

// Downloader fetches chart images with a browser-like User-Agent, a bounded
// timeout, inter-request pacing and an optional robots.txt gate.
type Downloader struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	limiter    *rate.Limiter
	robots     *RobotsChecker
	log        *logrus.Entry
}

// NewDownloader builds a downloader from the shared HTTP configuration.
func NewDownloader(cfg model.HTTPConfig, log *logrus.Entry) *Downloader {
	d := &Downloader{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		log:        log,
	}
	if cfg.DownloadsPerSecond > 0 {
		d.limiter = rate.NewLimiter(rate.Limit(cfg.DownloadsPerSecond), 1)
	}
	if cfg.CheckRobots {
		d.robots = NewRobotsChecker(cfg.UserAgent, cfg.Timeout)
	}
	return d
}

// Download fetches imgURL into destPath. The destination is only created on
// a fully read body, so a failed download never leaves a truncated file
// behind under its final name.
func (d *Downloader) Download(ctx context.Context, imgURL, destPath string) error {
	if err := d.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	if d.robots != nil && !d.robots.IsAllowed(ctx, imgURL) {
		return fmt.Errorf("robots.txt disallows %s", imgURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imgURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, d.maxBytes))
	if err != nil {
		return fmt.Errorf("read image body: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	if err := os.WriteFile(destPath, body, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	d.log.WithFields(logrus.Fields{"url": imgURL, "path": destPath, "bytes": len(body)}).Debug("image downloaded")
	return nil
}
