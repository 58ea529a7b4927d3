package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

var (
	// ErrInvalidURL is returned for anything that is not an absolute http(s) URL
	ErrInvalidURL = errors.New("invalid recipe url")
	// ErrFetch wraps transport failures and non-2xx responses
	ErrFetch = errors.New("failed to fetch recipe page")
)

// maxPageSize caps how much of a page is read
const maxPageSize = 10 << 20

// Importer downloads recipe pages and extracts their structured data
type Importer struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

// NewHTTPClient returns the client used for recipe pages. Redirects are
// followed with the net/http defaults.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// New creates an Importer. A nil client falls back to http.DefaultClient.
func New(client *http.Client, userAgent string, logger *zap.Logger) *Importer {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
	}
}

// Import fetches rawURL once and returns the canonical Recipe JSON found in it
func (i *Importer) Import(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if i.userAgent != "" {
		req.Header.Set("User-Agent", i.userAgent)
	}

	start := time.Now()
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFetch, u.Host, resp.StatusCode)
	}

	body, err := decodeBody(io.LimitReader(resp.Body, maxPageSize), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	recipe, err := Extract(body)
	if err != nil {
		i.logger.Info("no recipe extracted",
			zap.String("url", u.String()),
			zap.Error(err),
		)
		return nil, err
	}

	i.logger.Debug("recipe extracted",
		zap.String("url", u.String()),
		zap.Int("bytes", len(recipe)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return recipe, nil
}

// decodeBody converts the page to UTF-8 using the charset declared in the
// Content-Type header or a <meta> tag, falling back to sniffing the content.
func decodeBody(r io.Reader, contentType string) (io.Reader, error) {
	decoded, err := charset.NewReader(r, contentType)
	if errors.Is(err, io.EOF) {
		return strings.NewReader(""), nil
	}
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
