// Package server receives the OAuth redirect for the CLI login flow.
//
// # Router Infrastructure
//
// The [Router] interface registers [Handler] implementations with middleware support.
// [Middleware] runs in the order it was added.
// The [BasicRouter] implementation uses [http.ServeMux] internally.
//
// # OAuth Callback Handler
//
// [OAuthHandler] completes the PKCE authorization code flow. It checks the error and state
// parameters, exchanges the code along with the verifier, and sends the result through a channel.
// Only the first callback is processed.
//
// # Usage
//
// "yotoup auth login" calls [Listen] on the configured host and port, opens the browser at the
// authorization URL, waits for [OAuthHandler.Result], then shuts the listener down.
package server
