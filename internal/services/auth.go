package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	yotoAuthURL  = "https://login.yotoplay.com/authorize"
	yotoTokenURL = "https://login.yotoplay.com/oauth/token"
	yotoAudience = "https://api.yotoplay.com"
	yotoScope    = "offline_access"
)

// TokenStore persists the OAuth2 token between runs.
//
// Load returns nil, nil when nothing has been stored.
type TokenStore interface {
	Load() (*oauth2.Token, error)
	Save(token *oauth2.Token) error
	Clear() error
}

// Authenticator runs the PKCE authorization-code flow against the Yoto identity provider
// and keeps the stored access token fresh.
type Authenticator struct {
	config     *oauth2.Config
	audience   string
	store      TokenStore
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

// NewAuthenticator builds an Authenticator from the configured client registration.
//
// Missing endpoints fall back to the production identity provider.
func NewAuthenticator(cfg shared.YotoConfig, store TokenStore, logger *log.Logger) (*Authenticator, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%w: client_id", shared.ErrMissingCredentials)
	}

	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = yotoAuthURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = yotoTokenURL
	}
	audience := cfg.Audience
	if audience == "" {
		audience = yotoAudience
	}
	redirectURI := cfg.RedirectURI
	if redirectURI == "" {
		redirectURI = "http://localhost:3000/callback"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Authenticator{
		config: &oauth2.Config{
			ClientID:    cfg.ClientID,
			RedirectURL: redirectURI,
			Scopes:      []string{yotoScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:   authURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		audience:   audience,
		store:      store,
		httpClient: http.DefaultClient,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// SetHTTPClient overrides the client used for token requests.
func (a *Authenticator) SetHTTPClient(client *http.Client) {
	if client != nil {
		a.httpClient = client
	}
}

// RedirectURL returns the configured OAuth callback.
func (a *Authenticator) RedirectURL() string {
	return a.config.RedirectURL
}

// GenerateVerifier returns a fresh PKCE code verifier.
func (a *Authenticator) GenerateVerifier() string {
	return oauth2.GenerateVerifier()
}

// AuthCodeURL returns the login URL carrying the audience and S256 challenge for verifier.
func (a *Authenticator) AuthCodeURL(state, verifier string) string {
	return a.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("audience", a.audience),
		oauth2.S256ChallengeOption(verifier),
	)
}

// Exchange trades an authorization code for tokens and stores them.
func (a *Authenticator) Exchange(ctx context.Context, code, verifier string) (*oauth2.Token, error) {
	token, err := a.config.Exchange(a.clientContext(ctx), code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}

	if err := a.store.Save(token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	a.logger.Info("authenticated with Yoto", "expires", a.expiry(token))
	return token, nil
}

// ValidAccessToken returns a usable access token, refreshing it first when expired.
//
// An empty string with a nil error means no one is logged in.
func (a *Authenticator) ValidAccessToken(ctx context.Context) (string, error) {
	stored, err := a.store.Load()
	if err != nil {
		return "", err
	}
	if stored == nil || stored.AccessToken == "" {
		return "", nil
	}

	current := *stored
	if exp := a.expiry(stored); exp.IsZero() || a.now().Before(exp) {
		return current.AccessToken, nil
	}

	if current.RefreshToken == "" {
		return "", fmt.Errorf("%w: %w", shared.ErrTokenExpired, shared.ErrNoRefreshToken)
	}

	a.logger.Debug("refreshing access token")

	// Zeroing the expiry forces the token source to use the refresh token.
	current.AccessToken = ""
	current.Expiry = time.Time{}
	refreshed, err := a.config.TokenSource(a.clientContext(ctx), &current).Token()
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrRefreshFailed, err)
	}

	if err := a.store.Save(refreshed); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	a.logger.Info("access token refreshed")
	return refreshed.AccessToken, nil
}

// Status reports whether a token is stored and when it expires.
func (a *Authenticator) Status() (bool, time.Time, error) {
	token, err := a.store.Load()
	if err != nil {
		return false, time.Time{}, err
	}
	if token == nil || token.AccessToken == "" {
		return false, time.Time{}, nil
	}
	return true, a.expiry(token), nil
}

// Logout clears the stored tokens.
func (a *Authenticator) Logout() error {
	return a.store.Clear()
}

// expiry reads the exp claim of a JWT access token. A JWT without exp is treated as expired.
// Opaque tokens use the stored expiry, where zero means it never expires.
func (a *Authenticator) expiry(token *oauth2.Token) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.AccessToken, &claims); err != nil {
		return token.Expiry
	}
	if claims.ExpiresAt == nil {
		return time.Unix(0, 0)
	}
	return claims.ExpiresAt.Time
}

func (a *Authenticator) clientContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, a.httpClient)
}

// IsAuthError reports whether err means the user has to log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, shared.ErrNotAuthenticated) ||
		errors.Is(err, shared.ErrTokenExpired) ||
		errors.Is(err, shared.ErrRefreshFailed)
}
