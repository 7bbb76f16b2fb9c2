// Package services wraps the remote Yoto APIs used by the upload pipeline.
//
// # Yoto API
//
// [YotoClient] is a thin transport over the REST API. Every call takes the access token
// explicitly and sends it as a bearer header along with Accept: application/json.
// The pre-signed audio upload URL is the one exception: [YotoClient.PutAudio] sends no bearer header.
//
// # Authentication
//
// [Authenticator] runs the OAuth2 authorization-code flow with PKCE against login.yotoplay.com.
// Tokens are kept in a [TokenStore]; [Authenticator.ValidAccessToken] refreshes an expired access token
// before handing it out. Expiry is read from the JWT exp claim without verifying the signature.
//
// # Error Handling
//
// Failures wrap sentinel errors from the shared package so callers can match with errors.Is:
//   - [shared.ErrUploadTarget] : upload URL request failed or returned no URL
//   - [shared.ErrUploadTransport] : audio PUT failed
//   - [shared.ErrCardFetch] : card read failed
//   - [shared.ErrCardSave] : card write rejected, see [CardSaveError] for the response body
//   - [shared.ErrAPIRequest] : any other API request failed
//   - [shared.ErrRefreshFailed] : token refresh failed
package services
