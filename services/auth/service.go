package auth

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"familyboard/config"
	"familyboard/internal/localstore"
	"familyboard/utils"
)

const calendarReadonlyScope = "https://www.googleapis.com/auth/calendar.readonly"

// googleEndpoint is the Google OAuth endpoint pair used by the dashboard.
var googleEndpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
	TokenURL: "https://oauth2.googleapis.com/token",
}

// State is the outcome of an authentication check. AccessToken is set only
// when Authenticated is true.
type State struct {
	Authenticated bool   `json:"authenticated"`
	AccessToken   string `json:"-"`
}

// Service owns the OAuth access/refresh token lifecycle against the
// calendar provider. Tokens are persisted in the local store under fixed
// keys; the expiry is a millisecond epoch, stringified.
type Service struct {
	store         *localstore.Store
	configManager *config.Manager
	endpoint      oauth2.Endpoint
	now           func() time.Time
}

// NewService creates an auth service backed by the given store and config.
func NewService(store *localstore.Store, configManager *config.Manager) *Service {
	return &Service{
		store:         store,
		configManager: configManager,
		endpoint:      googleEndpoint,
		now:           time.Now,
	}
}

// oauthConfig builds the oauth2 configuration from the saved credentials.
func (s *Service) oauthConfig() (*oauth2.Config, error) {
	appCfg, err := s.configManager.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if appCfg.Env.GoogleClientID == "" || appCfg.Env.GoogleClientSecret == "" {
		return nil, fmt.Errorf("google credentials are not configured")
	}
	return &oauth2.Config{
		ClientID:     appCfg.Env.GoogleClientID,
		ClientSecret: appCfg.Env.GoogleClientSecret,
		RedirectURL:  appCfg.Env.GoogleRedirectURI,
		Scopes:       []string{calendarReadonlyScope},
		Endpoint:     s.endpoint,
	}, nil
}

// AuthCodeURL returns the provider consent URL with read-only calendar
// scope, offline access, and a forced consent prompt. The generated state
// token is persisted for verification in HandleCallback.
func (s *Service) AuthCodeURL() (string, error) {
	conf, err := s.oauthConfig()
	if err != nil {
		return "", err
	}

	state, err := utils.GenerateStateToken()
	if err != nil {
		return "", err
	}
	if err := s.store.Set(localstore.KeyOAuthState, state); err != nil {
		return "", fmt.Errorf("persist oauth state: %w", err)
	}

	return conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// HandleCallback exchanges the authorization code returned by the consent
// screen and persists the resulting tokens.
func (s *Service) HandleCallback(ctx context.Context, code, state string) error {
	stored, ok, err := s.store.Get(localstore.KeyOAuthState)
	if err != nil {
		return fmt.Errorf("read oauth state: %w", err)
	}
	if !ok || stored != state {
		return fmt.Errorf("oauth state mismatch")
	}
	// State tokens are single-use.
	if err := s.store.Delete(localstore.KeyOAuthState); err != nil {
		log.Printf("[auth] failed to clear oauth state: %v", err)
	}

	conf, err := s.oauthConfig()
	if err != nil {
		return err
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	if err := s.persistAccessToken(token.AccessToken, token.Expiry); err != nil {
		return err
	}
	if token.RefreshToken != "" {
		if err := s.store.Set(localstore.KeyRefreshToken, token.RefreshToken); err != nil {
			return fmt.Errorf("persist refresh token: %w", err)
		}
	}

	log.Printf("[auth] authorization code exchanged, token expires at %s", token.Expiry.Format(time.RFC3339))
	return nil
}

// EnsureAuthenticated inspects the persisted token state and returns the
// current auth state. A valid unexpired token authenticates without any
// network call. An expired token with a refresh token triggers exactly one
// refresh exchange; on failure all persisted token fields are cleared.
// Failures are logged, never propagated.
func (s *Service) EnsureAuthenticated(ctx context.Context) State {
	access, okAccess, err := s.store.Get(localstore.KeyAccessToken)
	if err != nil {
		log.Printf("[auth] read access token: %v", err)
		return State{}
	}
	expiryRaw, okExpiry, err := s.store.Get(localstore.KeyTokenExpiry)
	if err != nil {
		log.Printf("[auth] read token expiry: %v", err)
		return State{}
	}

	if !okAccess || !okExpiry {
		return State{}
	}

	expiryMillis, parseErr := strconv.ParseInt(expiryRaw, 10, 64)
	if parseErr == nil && s.now().UnixMilli() < expiryMillis {
		return State{Authenticated: true, AccessToken: access}
	}

	refresh, okRefresh, err := s.store.Get(localstore.KeyRefreshToken)
	if err != nil {
		log.Printf("[auth] read refresh token: %v", err)
		return State{}
	}
	if !okRefresh || refresh == "" {
		return State{}
	}

	return s.refresh(ctx, refresh)
}

// refresh exchanges the refresh token for a new access token. The stored
// refresh token is kept; only the access token and expiry are rewritten.
func (s *Service) refresh(ctx context.Context, refreshToken string) State {
	conf, err := s.oauthConfig()
	if err != nil {
		log.Printf("[auth] refresh aborted: %v", err)
		return State{}
	}

	source := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		log.Printf("[auth] token refresh failed, clearing session: %v", err)
		s.clearTokens()
		return State{}
	}

	if err := s.persistAccessToken(token.AccessToken, token.Expiry); err != nil {
		log.Printf("[auth] persist refreshed token: %v", err)
		return State{}
	}

	log.Printf("[auth] access token refreshed, expires at %s", token.Expiry.Format(time.RFC3339))
	return State{Authenticated: true, AccessToken: token.AccessToken}
}

func (s *Service) persistAccessToken(accessToken string, expiry time.Time) error {
	if expiry.IsZero() {
		expiry = s.now().Add(time.Hour)
	}
	if err := s.store.Set(localstore.KeyAccessToken, accessToken); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if err := s.store.Set(localstore.KeyTokenExpiry, strconv.FormatInt(expiry.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("persist token expiry: %w", err)
	}
	return nil
}

// clearTokens demotes the session to unauthenticated.
func (s *Service) clearTokens() {
	for _, key := range []string{localstore.KeyAccessToken, localstore.KeyRefreshToken, localstore.KeyTokenExpiry} {
		if err := s.store.Delete(key); err != nil {
			log.Printf("[auth] clear %s: %v", key, err)
		}
	}
}
