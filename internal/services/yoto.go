package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/yotoup/internal/models"
	"github.com/desertthunder/yotoup/internal/shared"
)

const (
	// DefaultBaseURL is the production Yoto API.
	DefaultBaseURL = "https://api.yotoplay.com"

	uploadURLEndpoint = "/media/transcode/audio/uploadUrl"
	contentEndpoint   = "/content"
	myContentEndpoint = "/content/mine"
)

// YotoClient is a thin authenticated transport over the Yoto REST API.
//
// Every call takes the access token explicitly; the client holds no credentials.
type YotoClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewYotoClient creates a client for baseURL, defaulting to [DefaultBaseURL] and [http.DefaultClient].
func NewYotoClient(baseURL string, client *http.Client) *YotoClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &YotoClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the API root requests are sent to.
func (c *YotoClient) BaseURL() string {
	return c.baseURL
}

// WithBaseURL returns a copy of the client pointed at another API root. An empty URL returns c.
func (c *YotoClient) WithBaseURL(baseURL string) *YotoClient {
	if baseURL == "" {
		return c
	}
	return &YotoClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: c.httpClient}
}

// APIError describes a non-2xx response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Body)
}

// CardSaveError is returned by [YotoClient.SaveCard] when the API rejects the write.
type CardSaveError struct {
	StatusCode int
	Body       string
}

func (e *CardSaveError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", shared.ErrCardSave, e.StatusCode, e.Body)
}

func (e *CardSaveError) Unwrap() error {
	return shared.ErrCardSave
}

// doRequest performs an authenticated request against the API and returns the status and raw body.
//
// Only transport and read failures are returned as errors; callers interpret the status.
func (c *YotoClient) doRequest(ctx context.Context, method, endpoint, token string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, data, nil
}

func ok(status int) bool {
	return status >= 200 && status < 300
}

// RequestUploadTarget asks the API for a pre-signed upload URL.
func (c *YotoClient) RequestUploadTarget(ctx context.Context, token string) (*models.UploadTarget, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, uploadURLEndpoint, token, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrUploadTarget, err)
	}
	if !ok(status) {
		return nil, fmt.Errorf("%w: %w", shared.ErrUploadTarget, &APIError{StatusCode: status, Body: string(body)})
	}

	var response struct {
		Upload *models.UploadTarget `json:"upload"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrUploadTarget, err)
	}
	if response.Upload == nil || response.Upload.UploadURL == "" {
		return nil, fmt.Errorf("%w: response has no upload URL", shared.ErrUploadTarget)
	}

	return response.Upload, nil
}

// PutAudio sends the raw audio bytes to a pre-signed upload URL.
//
// The URL carries its own authorization so no bearer header is sent.
func (c *YotoClient) PutAudio(ctx context.Context, uploadURL string, audio models.AudioFile) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, audio.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", shared.ErrUploadTransport, err)
	}

	contentType := audio.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	if audio.Size > 0 {
		req.ContentLength = audio.Size
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrUploadTransport, err)
	}
	defer resp.Body.Close()

	if !ok(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %w", shared.ErrUploadTransport, &APIError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	return nil
}

// TranscodeStatus fetches the transcode job for uploadID once.
//
// A nil error with an unready result means the job is still running.
func (c *YotoClient) TranscodeStatus(ctx context.Context, token, uploadID string) (*models.TranscodeResult, error) {
	endpoint := fmt.Sprintf("/media/upload/%s/transcoded?loudnorm=false", url.PathEscape(uploadID))

	status, body, err := c.doRequest(ctx, http.MethodGet, endpoint, token, nil)
	if err != nil {
		return nil, err
	}
	if !ok(status) {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, &APIError{StatusCode: status, Body: string(body)})
	}

	var response struct {
		Transcode *models.TranscodeResult `json:"transcode"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Transcode == nil {
		return &models.TranscodeResult{}, nil
	}

	return response.Transcode, nil
}

// FetchCard retrieves the full card document.
func (c *YotoClient) FetchCard(ctx context.Context, cardID, token string) (*models.Card, error) {
	if cardID == "" {
		return nil, fmt.Errorf("%w: card id is required", shared.ErrCardFetch)
	}

	status, body, err := c.doRequest(ctx, http.MethodGet, contentEndpoint+"/"+url.PathEscape(cardID), token, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCardFetch, err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w: %s", shared.ErrCardFetch, shared.ErrCardNotFound, cardID)
	}
	if !ok(status) {
		return nil, fmt.Errorf("%w: %w", shared.ErrCardFetch, &APIError{StatusCode: status, Body: string(body)})
	}

	var response struct {
		Card *models.Card `json:"card"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrCardFetch, err)
	}
	if response.Card == nil {
		return nil, fmt.Errorf("%w: response has no card", shared.ErrCardFetch)
	}

	return response.Card, nil
}

// SaveCard writes the full card document and returns the stored version.
//
// The response is read as {card: ...} when present and as a bare card otherwise.
func (c *YotoClient) SaveCard(ctx context.Context, card *models.Card, token string) (*models.Card, error) {
	status, body, err := c.doRequest(ctx, http.MethodPost, contentEndpoint, token, card)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCardSave, err)
	}
	if !ok(status) {
		return nil, &CardSaveError{StatusCode: status, Body: string(body)}
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return card, nil
	}

	var envelope struct {
		Card *models.Card `json:"card"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrCardSave, err)
	}
	if envelope.Card != nil {
		return envelope.Card, nil
	}

	var saved models.Card
	if err := json.Unmarshal(body, &saved); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrCardSave, err)
	}
	return &saved, nil
}

// ListCards retrieves the summary list of the user's cards.
func (c *YotoClient) ListCards(ctx context.Context, token string) ([]models.Card, error) {
	status, body, err := c.doRequest(ctx, http.MethodGet, myContentEndpoint, token, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	if status == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %w", shared.ErrNotAuthenticated, &APIError{StatusCode: status, Body: string(body)})
	}
	if !ok(status) {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, &APIError{StatusCode: status, Body: string(body)})
	}

	var response struct {
		Cards []models.Card `json:"cards"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", shared.ErrAPIRequest, err)
	}

	return response.Cards, nil
}
