package moltin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"storefront-bot/internal/domain"
	"storefront-bot/pkg/validator"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const (
	tokenPath       = "/oauth/access_token"
	refreshFlightID = "access_token"

	// DefaultTokenSkew is how long before expiry a credential is replaced
	DefaultTokenSkew = 10 * time.Second
)

// TokenSource hands out the authorization header for backend calls
type TokenSource interface {
	// AuthHeader returns "Bearer <token>", refreshing first when needed
	AuthHeader(ctx context.Context) (string, error)

	// ForceRefresh replaces the credential after rejectedHeader got a 401.
	// No grant is requested when another caller already replaced it.
	ForceRefresh(ctx context.Context, rejectedHeader string) error
}

// TokenCache holds the one shared credential for the commerce backend.
// Refreshes are single-flight and run detached from the caller's
// cancellation, so the credential is only ever replaced wholesale.
type TokenCache struct {
	httpClient *http.Client
	tokenURL   string
	clientID   string
	skew       time.Duration
	now        func() time.Time
	validator  validator.Validator

	mu         sync.RWMutex
	credential domain.Credential
	group      singleflight.Group
}

// Compile-time check to ensure TokenCache implements TokenSource interface
var _ TokenSource = (*TokenCache)(nil)

// NewTokenCache creates a token cache using the implicit client-credentials grant
func NewTokenCache(httpClient *http.Client, baseURL, clientID string, skew time.Duration) *TokenCache {
	if skew < 0 {
		skew = DefaultTokenSkew
	}
	return &TokenCache{
		httpClient: httpClient,
		tokenURL:   strings.TrimSuffix(baseURL, "/") + tokenPath,
		clientID:   clientID,
		skew:       skew,
		now:        time.Now,
		validator:  validator.New(),
	}
}

// AuthHeader returns the authorization header, refreshing the credential
// when it is missing or at/after its expiry minus skew.
func (t *TokenCache) AuthHeader(ctx context.Context) (string, error) {
	cred := t.current()
	if !cred.NeedsRefresh(t.now(), t.skew) {
		return bearer(cred.AccessToken), nil
	}

	cred, err := t.refresh(ctx, "")
	if err != nil {
		return "", err
	}
	return bearer(cred.AccessToken), nil
}

// ForceRefresh replaces the credential that produced rejectedHeader
func (t *TokenCache) ForceRefresh(ctx context.Context, rejectedHeader string) error {
	if rejectedHeader == "" {
		rejectedHeader = bearer(t.current().AccessToken)
	}
	_, err := t.refresh(ctx, rejectedHeader)
	return err
}

// Warmup fetches a credential ahead of the first user event
func (t *TokenCache) Warmup(ctx context.Context) error {
	_, err := t.AuthHeader(ctx)
	return err
}

// Credential returns a copy of the cached credential
func (t *TokenCache) Credential() domain.Credential {
	return t.current()
}

func (t *TokenCache) current() domain.Credential {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.credential
}

// refresh collapses concurrent refreshes into one grant request. With an empty
// rejectedHeader it only refreshes a credential that needs it; otherwise only
// while the cached credential is still the rejected one.
func (t *TokenCache) refresh(ctx context.Context, rejectedHeader string) (domain.Credential, error) {
	detached := context.WithoutCancel(ctx)
	ch := t.group.DoChan(refreshFlightID, func() (interface{}, error) {
		cur := t.current()
		stillValid := !cur.NeedsRefresh(t.now(), t.skew)
		if stillValid && (rejectedHeader == "" || bearer(cur.AccessToken) != rejectedHeader) {
			return cur, nil
		}

		cred, err := t.requestToken(detached)
		if err != nil {
			logrus.Errorf("Failed to refresh commerce access token: %v", err)
			return nil, err
		}

		t.mu.Lock()
		t.credential = cred
		t.mu.Unlock()

		logrus.Infof("Commerce access token refreshed, expires at %s", cred.ExpiresAt.Format(time.RFC3339))
		return cred, nil
	})

	select {
	case <-ctx.Done():
		return domain.Credential{}, &domain.AuthError{Reason: "token refresh abandoned", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return domain.Credential{}, res.Err
		}
		return res.Val.(domain.Credential), nil
	}
}

func (t *TokenCache) requestToken(ctx context.Context) (domain.Credential, error) {
	form := url.Values{}
	form.Set("client_id", t.clientID)
	form.Set("grant_type", "implicit")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Credential{}, &domain.AuthError{Reason: "create token request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return domain.Credential{}, &domain.AuthError{Reason: "token request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return domain.Credential{}, &domain.AuthError{Reason: "read token response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.Credential{}, &domain.AuthError{
			Reason: fmt.Sprintf("token endpoint returned status %d: %s", resp.StatusCode, truncate(string(body), 200)),
		}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return domain.Credential{}, &domain.AuthError{Reason: "parse token response", Err: err}
	}
	if err := t.validator.ValidateStruct(token); err != nil {
		return domain.Credential{}, &domain.AuthError{Reason: "invalid token response", Err: err}
	}

	var expiresAt time.Time
	switch {
	case token.Expires > 0:
		expiresAt = time.Unix(token.Expires, 0)
	case token.ExpiresIn > 0:
		expiresAt = t.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	default:
		return domain.Credential{}, &domain.AuthError{Reason: "token response has no expiry"}
	}

	return domain.Credential{AccessToken: token.AccessToken, ExpiresAt: expiresAt}, nil
}

func bearer(token string) string {
	if token == "" {
		return ""
	}
	return "Bearer " + token
}
