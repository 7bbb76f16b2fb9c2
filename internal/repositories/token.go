package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
)

// DefaultProvider is the provider key tokens are stored under.
const DefaultProvider = "yoto"

// TokenRepository stores a single OAuth2 token per provider.
type TokenRepository struct {
	db       *sql.DB
	provider string
}

// NewTokenRepository creates a new TokenRepository for [DefaultProvider].
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db, provider: DefaultProvider}
}

// Load returns the stored token, or nil when none has been saved.
func (r *TokenRepository) Load() (*oauth2.Token, error) {
	query := `
		SELECT access_token, refresh_token, token_type, expiry
		FROM tokens
		WHERE provider = ?
	`

	var (
		accessToken  string
		refreshToken sql.NullString
		tokenType    sql.NullString
		expiry       sql.NullTime
	)

	err := r.db.QueryRow(query, r.provider).Scan(&accessToken, &refreshToken, &tokenType, &expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.String,
		TokenType:    tokenType.String,
	}
	if expiry.Valid {
		token.Expiry = expiry.Time
	}
	return token, nil
}

// Save upserts token. An empty refresh token keeps the previously stored one.
func (r *TokenRepository) Save(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("access token is required")
	}

	query := `
		INSERT INTO tokens (provider, access_token, refresh_token, token_type, expiry, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = COALESCE(excluded.refresh_token, tokens.refresh_token),
			token_type = excluded.token_type,
			expiry = excluded.expiry,
			updated_at = excluded.updated_at
	`

	var refreshToken any = token.RefreshToken
	if token.RefreshToken == "" {
		refreshToken = nil
	}

	var expiry any = token.Expiry
	if token.Expiry.IsZero() {
		expiry = nil
	}

	if _, err := r.db.Exec(query, r.provider, token.AccessToken, refreshToken, token.TokenType, expiry, time.Now()); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (r *TokenRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM tokens WHERE provider = ?", r.provider); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
