package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/yotoup/internal/server"
	"github.com/desertthunder/yotoup/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin runs the PKCE authorization code flow through a local callback server.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	auth, err := r.authenticator()
	if err != nil {
		return err
	}

	state := shared.GenerateID()
	verifier := auth.GenerateVerifier()
	handler := server.NewOAuthHandler(auth, state, verifier)

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(handler)

	addr := r.Config().Server.Addr()
	listener, err := server.Listen(addr, router)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := listener.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("callback server shutdown failed", "error", err)
		}
	}()
	r.logger.Debug("callback server listening", "addr", listener.Addr(), "redirect_uri", auth.RedirectURL())

	authURL := auth.AuthCodeURL(state, verifier)
	if cmd.Bool("no-browser") {
		r.writePlain("Open this URL to log in:\n%s\n", authURL)
	} else {
		r.writePlain("Opening browser to log in...\n")
		if err := r.openBrowser(authURL); err != nil {
			r.logger.Warn("could not open browser", "error", err)
			r.writePlain("Open this URL to log in:\n%s\n", authURL)
		}
	}

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
	case <-time.After(cmd.Duration("timeout")):
		return fmt.Errorf("%w: no callback received", shared.ErrTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	r.logger.Info("authentication successful")
	return r.writePlain("✓ Logged in to Yoto\n")
}

// AuthStatus reports whether tokens are stored and when the access token expires.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	auth, err := r.authenticator()
	if err != nil {
		return err
	}

	ok, expiry, err := auth.Status()
	if err != nil {
		return err
	}
	if !ok {
		return r.writePlain("✗ Not logged in\n")
	}

	r.writePlain("✓ Logged in\n")
	switch {
	case expiry.IsZero():
		r.writePlain("Access token: no expiry\n")
	case expiry.Before(time.Now()):
		r.writePlain("Access token: expired %s (refreshed on next use)\n", expiry.Local().Format(time.RFC1123))
	default:
		r.writePlain("Access token: expires %s\n", expiry.Local().Format(time.RFC1123))
	}
	return nil
}

// AuthLogout removes stored tokens.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	auth, err := r.authenticator()
	if err != nil {
		return err
	}
	if err := auth.Logout(); err != nil {
		return err
	}
	r.logger.Info("tokens cleared")
	return r.writePlain("✓ Logged out\n")
}
