package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ahmetk3436/Daiyly-sub000/internal/client/models"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/repositories/credentials"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/session"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

// HTTPClient talks to the journal backend over its REST interface.
// Protected calls attach the stored access token and route 401s through the
// refresher before retrying once with the renewed token.
type HTTPClient struct {
	baseURL   string
	hc        *http.Client
	creds     credentials.Store
	refresher *refresher
	log       logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL. The expired
// signal fires when credential renewal fails.
func NewHTTPClient(baseURL string, creds credentials.Store, expired *session.Signal, log logging.Logger, timeout time.Duration) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
	}
	c.refresher = newRefresher(creds, c.refreshCall, expired, log)
	return c
}

func (c *HTTPClient) Close() error {
	c.hc.CloseIdleConnections()
	return nil
}

// Ping hits the unauthenticated health endpoint. Used by the connectivity
// watcher to flip the client between online and offline mode.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.send(ctx, http.MethodGet, "/health", nil, nil, nil, false)
}

// ---- wire types ----

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type appleRequest struct {
	IdentityToken string `json:"identity_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type authResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

type apiError struct {
	Error string `json:"error"`
}

// ---- auth endpoints ----

func (c *HTTPClient) Login(ctx context.Context, email, password string) (AuthResult, error) {
	return c.authCall(ctx, "/auth/login", authRequest{Email: email, Password: password})
}

func (c *HTTPClient) Register(ctx context.Context, email, password string) (AuthResult, error) {
	return c.authCall(ctx, "/auth/register", authRequest{Email: email, Password: password})
}

func (c *HTTPClient) AppleSignIn(ctx context.Context, identityToken string) (AuthResult, error) {
	return c.authCall(ctx, "/auth/apple", appleRequest{IdentityToken: identityToken})
}

func (c *HTTPClient) authCall(ctx context.Context, path string, body any) (AuthResult, error) {
	var resp authResponse
	if err := c.send(ctx, http.MethodPost, path, nil, body, &resp, false); err != nil {
		return AuthResult{}, err
	}
	return AuthResult{
		Pair: models.TokenPair{Access: resp.AccessToken, Refresh: resp.RefreshToken},
		User: resp.User,
	}, nil
}

// refreshCall is the renewal endpoint used by the refresher. It deliberately
// bypasses the authorized path: a refresh must never trigger another refresh.
func (c *HTTPClient) refreshCall(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	var resp authResponse
	err := c.send(ctx, http.MethodPost, "/auth/refresh", nil,
		refreshRequest{RefreshToken: refreshToken}, &resp, false)
	if err != nil {
		return models.TokenPair{}, err
	}
	return models.TokenPair{Access: resp.AccessToken, Refresh: resp.RefreshToken}, nil
}

// ---- journal endpoints ----

func (c *HTTPClient) CreateJournal(ctx context.Context, req CreateJournalRequest) (models.Entry, error) {
	var entry models.Entry
	if err := c.authorized(ctx, http.MethodPost, "/journals", nil, req, &entry); err != nil {
		return models.Entry{}, err
	}
	return entry, nil
}

func (c *HTTPClient) RecentEntries(ctx context.Context) ([]models.Entry, error) {
	var entries []models.Entry
	if err := c.authorized(ctx, http.MethodGet, "/journals/recent", nil, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) Streak(ctx context.Context) (models.Streak, error) {
	var streak models.Streak
	if err := c.authorized(ctx, http.MethodGet, "/journals/streak", nil, nil, &streak); err != nil {
		return models.Streak{}, err
	}
	return streak, nil
}

func (c *HTTPClient) HistoryPage(ctx context.Context, page int) (models.HistoryPage, error) {
	query := url.Values{"page": []string{strconv.Itoa(page)}}
	var result models.HistoryPage
	if err := c.authorized(ctx, http.MethodGet, "/journals/history", query, nil, &result); err != nil {
		return models.HistoryPage{}, err
	}
	return result, nil
}

func (c *HTTPClient) Insights(ctx context.Context) (models.Insights, error) {
	var insights models.Insights
	if err := c.authorized(ctx, http.MethodGet, "/insights", nil, nil, &insights); err != nil {
		return models.Insights{}, err
	}
	return insights, nil
}

func (c *HTTPClient) Search(ctx context.Context, query string) ([]models.Entry, error) {
	q := url.Values{"q": []string{query}}
	var entries []models.Entry
	if err := c.authorized(ctx, http.MethodGet, "/journals/search", q, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ---- request plumbing ----

// authorized sends the request with the current access token and, on a 401,
// waits for the (single-flight) refresh before retrying once with the
// renewed token.
func (c *HTTPClient) authorized(ctx context.Context, method, path string, query url.Values, body, out any) error {
	err := c.send(ctx, method, path, query, body, out, true)
	if !errors.Is(err, ErrUnauthorized) {
		return err
	}

	if err := c.refresher.Await(ctx); err != nil {
		return err
	}
	return c.send(ctx, method, path, query, body, out, true)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, query url.Values, body, out any, withToken bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if withToken {
		pair, ok, err := c.creds.Read(ctx)
		if err != nil {
			// An unavailable store reads as "no token"; the 401 that follows
			// goes through the normal refresh protocol.
			c.log.Warn(ctx, "credential store read failed", "error", err)
			ok = false
		}
		if ok && pair.Access != "" {
			req.Header.Set("Authorization", "Bearer "+pair.Access)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out)
}

func (c *HTTPClient) decodeResponse(resp *http.Response, out any) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil

	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized

	case resp.StatusCode >= 500,
		resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)

	default:
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed: status %d", resp.StatusCode)
	}
}
