package address

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dukerupert/addrcheck/internal/storage"
)

const (
	// DefaultBaseURL is the Address Validation API host.
	DefaultBaseURL = "https://addressvalidation.googleapis.com"

	validatePath = "/v1:validateAddress"

	// ResponseDumpKey is the storage key the last raw response is written to.
	ResponseDumpKey = "api_response.json"
)

// GoogleValidator implements the Validator interface using the Google
// Address Validation API.
type GoogleValidator struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	dump       storage.Storage
	logger     zerolog.Logger
}

// GoogleConfig contains configuration for the Google validator.
type GoogleConfig struct {
	APIKey     string
	BaseURL    string          // Optional: defaults to DefaultBaseURL
	HTTPClient *http.Client    // Optional: defaults to a client with no timeout
	Dump       storage.Storage // Optional: stores each raw 200 body for diagnostics
	Logger     *zerolog.Logger // Optional: defaults to a no-op logger
}

// NewGoogleValidator creates a new Google address validator.
func NewGoogleValidator(cfg GoogleConfig) (*GoogleValidator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &GoogleValidator{
		apiKey:     cfg.APIKey,
		endpoint:   strings.TrimRight(baseURL, "/") + validatePath,
		httpClient: httpClient,
		dump:       cfg.Dump,
		logger:     logger.With().Str("adapter", "google").Logger(),
	}, nil
}

// Validate posts one request to the service.
// Non-200 responses come back as *TransportError carrying status and body.
func (v *GoogleValidator) Validate(ctx context.Context, req ValidationRequest) (*Response, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint+"?key="+url.QueryEscape(v.apiKey), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call address validation: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	v.logger.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("address validation response")

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if v.dump != nil {
		if _, err := v.dump.Put(ctx, ResponseDumpKey, bytes.NewReader(body), "application/json"); err != nil {
			v.logger.Warn().Err(err).Msg("failed to store raw response")
		}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &out, nil
}
