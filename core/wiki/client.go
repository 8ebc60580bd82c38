package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoEntity is returned by sitelink resolution when a page has no linked
// Wikidata entity at all, as opposed to a transport failure.
var ErrNoEntity = errors.New("no linked entity")

// batchSize is the maximum number of titles per wbgetentities call,
// the limit the Wikidata API imposes on unauthenticated clients.
const batchSize = 50

// Client defines the interface for article source and entity link operations.
type Client interface {
	// Exists checks whether a title resolves to an existing page.
	Exists(ctx context.Context, edition, title string) (bool, error)
	// Fetch retrieves the raw wikitext of a page.
	Fetch(ctx context.Context, edition, title string) (string, error)
	// RedirectTarget returns the redirect target of a title, or "" if the
	// title is not a redirect.
	RedirectTarget(ctx context.Context, edition, title string) (string, error)
	// Sitelinks resolves the linked titles of a page on other editions.
	// The result maps edition codes to titles. Returns ErrNoEntity when the
	// page has no linked entity.
	Sitelinks(ctx context.Context, edition, title string) (map[string]string, error)
	// SitelinksBatch resolves sitelinks for many titles at once, keyed by
	// the input title. Titles without a linked entity are absent from the
	// result.
	SitelinksBatch(ctx context.Context, edition string, titles []string) (map[string]map[string]string, error)
}

// NewClient creates a new HTTP-backed client based on the configuration.
func NewClient(cfg Config) (Client, error) {
	if cfg.APITemplate == "" || !strings.Contains(cfg.APITemplate, "%s") {
		return nil, fmt.Errorf("invalid api template %q", cfg.APITemplate)
	}
	if cfg.WikidataAPI == "" {
		return nil, fmt.Errorf("wikidata api endpoint is empty")
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeoutDuration,
		},
	}, nil
}

type httpClient struct {
	cfg  Config
	http *http.Client
}

// queryResponse covers the parts of an action=query response the client uses
// (formatversion=2).
type queryResponse struct {
	Query struct {
		Redirects []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"redirects"`
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Invalid   bool   `json:"invalid"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// entitiesResponse covers the parts of a wbgetentities response the client uses.
type entitiesResponse struct {
	Entities map[string]struct {
		ID        string  `json:"id"`
		Missing   *string `json:"missing"`
		Sitelinks map[string]struct {
			Site  string `json:"site"`
			Title string `json:"title"`
		} `json:"sitelinks"`
	} `json:"entities"`
	Normalized []struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"normalized"`
}

func (c *httpClient) Exists(ctx context.Context, edition, title string) (bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)

	var resp queryResponse
	if err := c.get(ctx, c.endpoint(edition), params, &resp); err != nil {
		return false, err
	}
	if len(resp.Query.Pages) == 0 {
		return false, nil
	}
	page := resp.Query.Pages[0]
	return !page.Missing && !page.Invalid, nil
}

func (c *httpClient) Fetch(ctx context.Context, edition, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "revisions")
	params.Set("rvprop", "content")
	params.Set("rvslots", "main")

	var resp queryResponse
	if err := c.get(ctx, c.endpoint(edition), params, &resp); err != nil {
		return "", err
	}
	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return "", fmt.Errorf("page %q does not exist on %s", title, edition)
	}
	revs := resp.Query.Pages[0].Revisions
	if len(revs) == 0 {
		return "", fmt.Errorf("page %q on %s has no revisions", title, edition)
	}
	return revs[0].Slots.Main.Content, nil
}

func (c *httpClient) RedirectTarget(ctx context.Context, edition, title string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("redirects", "1")

	var resp queryResponse
	if err := c.get(ctx, c.endpoint(edition), params, &resp); err != nil {
		return "", err
	}
	for _, r := range resp.Query.Redirects {
		if r.From == title {
			return r.To, nil
		}
	}
	return "", nil
}

func (c *httpClient) Sitelinks(ctx context.Context, edition, title string) (map[string]string, error) {
	links, err := c.SitelinksBatch(ctx, edition, []string{title})
	if err != nil {
		return nil, err
	}
	entry, ok := links[title]
	if !ok {
		return nil, ErrNoEntity
	}
	return entry, nil
}

func (c *httpClient) SitelinksBatch(ctx context.Context, edition string, titles []string) (map[string]map[string]string, error) {
	results := make(map[string]map[string]string)

	for start := 0; start < len(titles); start += batchSize {
		end := start + batchSize
		if end > len(titles) {
			end = len(titles)
		}
		chunk := titles[start:end]

		params := url.Values{}
		params.Set("action", "wbgetentities")
		params.Set("props", "sitelinks")
		params.Set("sites", edition+"wiki")
		params.Set("titles", strings.Join(chunk, "|"))

		var resp entitiesResponse
		if err := c.get(ctx, c.cfg.WikidataAPI, params, &resp); err != nil {
			return nil, err
		}

		// The API normalizes titles (underscores, first-letter case); map
		// canonical titles back to the caller's input form.
		denormalized := make(map[string]string, len(resp.Normalized))
		for _, n := range resp.Normalized {
			denormalized[n.To] = n.From
		}

		for id, entity := range resp.Entities {
			if id == "-1" || entity.Missing != nil {
				continue
			}
			source, ok := entity.Sitelinks[edition+"wiki"]
			if !ok {
				continue
			}
			input := source.Title
			if original, ok := denormalized[input]; ok {
				input = original
			}

			links := make(map[string]string, len(entity.Sitelinks))
			for site, link := range entity.Sitelinks {
				links[strings.TrimSuffix(site, "wiki")] = link.Title
			}
			results[input] = links
		}
	}

	return results, nil
}

func (c *httpClient) endpoint(edition string) string {
	return fmt.Sprintf(c.cfg.APITemplate, edition)
}

// get performs a GET against a MediaWiki endpoint and decodes the JSON
// response into out.
func (c *httpClient) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	params.Set("format", "json")
	if params.Get("action") == "query" {
		params.Set("formatversion", "2")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", endpoint, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return nil
}
