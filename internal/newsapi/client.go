// Package newsapi is the thin client for the internal news platform.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/model"
	"github.com/cioinsight/deckgen/internal/oauth"
)

// Client fetches the CIO channel article list.
type Client struct {
	articleURL string
	tokens     *oauth.Client
	httpClient *http.Client
	maxBytes   int64
	log        *logrus.Entry
}

// NewClient builds a news client on top of an oauth token source.
func NewClient(cfg model.NewsConfig, httpCfg model.HTTPConfig, log *logrus.Entry) *Client {
	return &Client{
		articleURL: cfg.ArticleURL,
		tokens:     oauth.NewClient(cfg.AuthURL, cfg.ClientID, cfg.ClientSecret, httpCfg.Timeout),
		httpClient: &http.Client{Timeout: httpCfg.Timeout},
		maxBytes:   httpCfg.MaxBodyBytes,
		log:        log,
	}
}

// articleList is the platform's list envelope.
type articleList struct {
	Articles []model.Article `json:"articles"`
}

// FetchArticles retrieves the article list. An expired token gets one
// re-authentication and retry; any other failure is returned.
func (c *Client) FetchArticles(ctx context.Context) ([]model.Article, error) {
	body, status, err := c.get(ctx)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		c.log.Warn("news token expired, re-authenticating")
		c.tokens.Invalidate()
		body, status, err = c.get(ctx)
		if err != nil {
			return nil, err
		}
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("news platform returned %d", status)
	}

	var list articleList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode article list: %w", err)
	}
	c.log.WithField("count", len(list.Articles)).Info("fetched articles")
	return list.Articles, nil
}

func (c *Client) get(ctx context.Context) ([]byte, int, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("news auth: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.articleURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create article request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch articles: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("read article list: %w", err)
	}
	return body, resp.StatusCode, nil
}
