package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest   = fmt.Errorf("API request failed")
	ErrCardNotFound = fmt.Errorf("card not found")

	// Upload pipeline errors
	ErrUploadTarget     = fmt.Errorf("failed to get upload URL")
	ErrUploadTransport  = fmt.Errorf("failed to upload audio")
	ErrTranscodeTimeout = fmt.Errorf("transcoding timed out")
	ErrCardFetch        = fmt.Errorf("failed to fetch card")
	ErrCardSave         = fmt.Errorf("failed to update card")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
