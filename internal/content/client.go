package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/veloura/boutique-service/internal/platform/cache"
)

var ErrPageNotFound = errors.New("page not found")

// Page is an editorial page managed in the headless CMS: about, size guide,
// shipping terms, lookbook entries.
type Page struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	BodyHTML  string    `json:"body_html"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Config struct {
	BaseURL  string
	Token    string
	CacheTTL time.Duration
}

// Client reads editorial content over the CMS REST API. Responses are
// cached in redis so the storefront does not hit the CMS on every page
// view; cache may be nil.
type Client struct {
	http   *http.Client
	cfg    *Config
	cache  *cache.RedisClient
	logger *zap.Logger
}

func NewClient(cfg *Config, cacheClient *cache.RedisClient, logger *zap.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: 10 * time.Second},
		cfg:    cfg,
		cache:  cacheClient,
		logger: logger,
	}
}

func (c *Client) GetPage(ctx context.Context, slug string) (*Page, error) {
	cacheKey := "cms:page:" + slug

	if c.cache != nil {
		if cached, err := c.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var page Page
			if err := json.Unmarshal([]byte(cached), &page); err == nil {
				return &page, nil
			}
		}
	}

	page, err := c.fetchPage(ctx, slug)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if body, err := json.Marshal(page); err == nil {
			if err := c.cache.Client.Set(ctx, cacheKey, body, c.cfg.CacheTTL).Err(); err != nil {
				c.logger.Warn("failed to cache cms page", zap.String("slug", slug), zap.Error(err))
			}
		}
	}

	return page, nil
}

func (c *Client) fetchPage(ctx context.Context, slug string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/pages/%s", c.cfg.BaseURL, slug), nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch cms page %s: %w", slug, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrPageNotFound
	case resp.StatusCode >= 400:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch cms page %s: status %d: %s", slug, resp.StatusCode, body)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode cms page %s: %w", slug, err)
	}
	return &page, nil
}
