package sfmc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	pkgError "github.com/9rajputshivam/daytime-window-check/pkg/error"
)

// tokenSafetyMargin keeps a credential from being served close to its expiry
// to avoid races with the issuer's own clock.
const tokenSafetyMargin = 60 * time.Second

const defaultRequestTimeout = 10 * time.Second

type Config struct {
	Subdomain    string
	ClientID     string
	ClientSecret string
	AccountID    string
	Timeout      time.Duration

	// AuthBaseURL and RestBaseURL override the marketingcloudapis endpoints,
	// used by tests.
	AuthBaseURL string
	RestBaseURL string
}

// Client talks to the Marketing Cloud REST API. It owns the cached access
// credential; concurrent callers share a single in-flight token exchange.
type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		now:  time.Now,
	}
}

func (c *Client) authURL() string {
	if c.cfg.AuthBaseURL != "" {
		return c.cfg.AuthBaseURL
	}
	return fmt.Sprintf("https://%s.auth.marketingcloudapis.com", c.cfg.Subdomain)
}

func (c *Client) restURL() string {
	if c.cfg.RestBaseURL != "" {
		return c.cfg.RestBaseURL
	}
	return fmt.Sprintf("https://%s.rest.marketingcloudapis.com", c.cfg.Subdomain)
}

// GetToken returns a valid access token, reusing the cached one while it has
// more than the safety margin left. Only one exchange runs at a time; waiting
// callers reuse its result. On failure the previous state is left untouched.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.expiresAt.Add(-tokenSafetyMargin)) {
		return c.token, nil
	}

	token, expiresAt, err := c.exchange(ctx)
	if err != nil {
		return "", err
	}

	c.token = token
	c.expiresAt = expiresAt
	logrus.Infof("[SFMC] access token refreshed, expires %s", humanize.Time(expiresAt))
	return c.token, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) exchange(ctx context.Context) (string, time.Time, error) {
	body, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.cfg.ClientID,
		"client_secret": c.cfg.ClientSecret,
		"account_id":    c.cfg.AccountID,
	})
	if err != nil {
		return "", time.Time{}, pkgError.UpstreamAuthError(err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL()+"/v2/token", bytes.NewReader(body))
	if err != nil {
		return "", time.Time{}, pkgError.UpstreamAuthError(err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", time.Time{}, pkgError.UpstreamAuthError(fmt.Sprintf("token exchange failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", time.Time{}, pkgError.UpstreamAuthError(fmt.Sprintf("token exchange returned %d: %s", resp.StatusCode, payload))
	}

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", time.Time{}, pkgError.UpstreamAuthError(fmt.Sprintf("malformed token response: %v", err))
	}
	if parsed.AccessToken == "" || parsed.ExpiresIn <= 0 {
		return "", time.Time{}, pkgError.UpstreamAuthError("token response missing access_token or expires_in")
	}

	return parsed.AccessToken, c.now().Add(time.Duration(parsed.ExpiresIn) * time.Second), nil
}
