package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	log "github.com/go-pkgz/lgr"

	"github.com/automation-practice/sessionboot/internal/models"
)

// ProbeClient checks a saved session against the live site over plain HTTP
type ProbeClient interface {
	Probe(ctx context.Context, state *models.StorageState, targetURL string) (*ProbeResult, error)
}

// ProbeResult is the outcome of a session probe
type ProbeResult struct {
	Authenticated bool
	StatusCode    int
	Location      string // redirect target when the site bounced the request
}

// HTTPProbeClient implements ProbeClient using net/http
type HTTPProbeClient struct {
	timeout time.Duration
}

// NewProbeClient creates a new probe client
func NewProbeClient(timeout time.Duration) ProbeClient {
	return &HTTPProbeClient{timeout: timeout}
}

// Probe replays the state's cookies and requests targetURL without following redirects.
// Only a 200 response counts as authenticated.
func (c *HTTPProbeClient) Probe(ctx context.Context, state *models.StorageState, targetURL string) (*ProbeResult, error) {
	target, err := url.Parse(targetURL)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid probe url %q", targetURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	jar.SetCookies(target, toHTTPCookies(state, target))

	httpClient := &http.Client{
		Jar:     jar,
		Timeout: c.timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	result := &ProbeResult{
		Authenticated: resp.StatusCode == http.StatusOK,
		StatusCode:    resp.StatusCode,
		Location:      resp.Header.Get("Location"),
	}
	log.Printf("[DEBUG] probe %s: status %d, location %q", target, resp.StatusCode, result.Location)
	return result, nil
}

// toHTTPCookies converts stored cookies that apply to target.
// The jar ignores Domain for host-only cookies, so domain matching is done here.
func toHTTPCookies(state *models.StorageState, target *url.URL) []*http.Cookie {
	if state == nil {
		return nil
	}
	host := target.Hostname()
	cookies := make([]*http.Cookie, 0, len(state.Cookies))
	for _, sc := range state.Cookies {
		if !domainMatches(host, sc.Domain) {
			continue
		}
		cookie := &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Secure:   sc.Secure,
			HttpOnly: sc.HTTPOnly,
		}
		if sc.Expires > 0 {
			cookie.Expires = time.Unix(int64(sc.Expires), 0)
		}
		cookies = append(cookies, cookie)
	}
	return cookies
}

// domainMatches reports whether a cookie domain (possibly with a leading dot) covers host
func domainMatches(host, domain string) bool {
	if domain == "" {
		return true
	}
	if domain[0] == '.' {
		domain = domain[1:]
	}
	if host == domain {
		return true
	}
	return len(host) > len(domain) && host[len(host)-len(domain)-1:] == "."+domain
}
