// Package sapb1 is the SAP Business One Service Layer client used for
// business partner and marketing document lookups.
package sapb1

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/b1connect/notify-gateway/internal/notification_service/domain"
)

// Config carries the Service Layer connection settings.
type Config struct {
	ServiceLayerURL string
	CompanyDB       string
	Username        string
	Password        string
	// Service Layer installs commonly run with self-signed certificates.
	SkipTLSVerify bool
}

// Client talks to the Service Layer. The session is established lazily on
// first use, re-established once on a 401, and released by Logout on
// shutdown. The mutex guards the session state because the gateway serves
// HTTP requests concurrently.
type Client struct {
	logger *slog.Logger
	http   *resty.Client
	cfg    Config

	mu        sync.Mutex
	sessionID string
}

// NewClient creates a Service Layer client. No connection is made until
// the first lookup (or an explicit Login).
func NewClient(cfg Config, logger *slog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(cfg.ServiceLayerURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	if cfg.SkipTLSVerify {
		rc.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &Client{
		logger: logger.With("adapter", "sapb1"),
		http:   rc,
		cfg:    cfg,
	}
}

type loginRequest struct {
	CompanyDB string `json:"CompanyDB"`
	UserName  string `json:"UserName"`
	Password  string `json:"Password"`
}

type loginResponse struct {
	SessionID string `json:"SessionId"`
}

// Login authenticates against the Service Layer and stores the session
// cookies for subsequent requests.
func (c *Client) Login(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginLocked(ctx)
}

func (c *Client) loginLocked(ctx context.Context) error {
	var result loginResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(loginRequest{
			CompanyDB: c.cfg.CompanyDB,
			UserName:  c.cfg.Username,
			Password:  c.cfg.Password,
		}).
		SetResult(&result).
		Post("/Login")
	if err != nil {
		return fmt.Errorf("SAP login failed: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("SAP login failed: status %d", resp.StatusCode())
	}

	c.sessionID = result.SessionID

	// The Service Layer expects its B1SESSION/ROUTEID cookies echoed back
	// on every request.
	var pairs []string
	for _, ck := range resp.Cookies() {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	if len(pairs) > 0 {
		c.http.SetHeader("Cookie", strings.Join(pairs, "; "))
	}

	c.logger.InfoContext(ctx, "logged in to SAP Service Layer")
	return nil
}

// Logout releases the session. Errors are logged, not returned as fatal;
// the session dies with the process anyway.
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionID == "" {
		return
	}
	if _, err := c.http.R().SetContext(ctx).Post("/Logout"); err != nil {
		c.logger.WarnContext(ctx, "SAP logout failed", "error", err)
		return
	}
	c.sessionID = ""
	c.logger.InfoContext(ctx, "logged out from SAP Service Layer")
}

func (c *Client) ensureLoggedIn(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sessionID != "" {
		return nil
	}
	return c.loginLocked(ctx)
}

func (c *Client) relogin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = ""
	return c.loginLocked(ctx)
}

// get performs an authenticated GET, renewing the session once when the
// backend reports 401. A 404 maps to domain.ErrNotFound.
func (c *Client) get(ctx context.Context, path string, query map[string]string, result interface{}) error {
	if err := c.ensureLoggedIn(ctx); err != nil {
		return err
	}

	do := func() (*resty.Response, error) {
		req := c.http.R().SetContext(ctx).SetResult(result)
		if query != nil {
			req.SetQueryParams(query)
		}
		return req.Get(path)
	}

	resp, err := do()
	if err != nil {
		return fmt.Errorf("SAP request failed: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.logger.InfoContext(ctx, "SAP session expired, re-authenticating")
		if err := c.relogin(ctx); err != nil {
			return err
		}
		if resp, err = do(); err != nil {
			return fmt.Errorf("SAP request failed: %w", err)
		}
	}

	switch {
	case resp.IsSuccess():
		return nil
	case resp.StatusCode() == http.StatusNotFound:
		return domain.ErrNotFound
	default:
		return fmt.Errorf("SAP request failed: status %d", resp.StatusCode())
	}
}
