package restoration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"chroma/internal/shared/config"
	"chroma/internal/shared/logger"
)

const (
	// Default timeout when the config omits one.
	defaultRequestTimeout = 60 * time.Second
	// Maximum response body size for the provider API (1MB)
	maxProviderResponseSize = 1 << 20
)

// restoreResponse is the provider API response shape.
type restoreResponse struct {
	ResultURL        string `json:"result_url"`
	Model            string `json:"model"`
	ProcessingTimeMs uint64 `json:"processing_time_ms"`
}

// HTTPProvider talks to a colorization model served over HTTP. The image is
// sent as a multipart upload; the response carries the result URL.
type HTTPProvider struct {
	name       string
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

// NewHTTPProvider creates a provider for the configured model endpoint.
func NewHTTPProvider(cfg *config.HTTPProviderConfig, logger logger.Interface) *HTTPProvider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &HTTPProvider{
		name:     cfg.Name,
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Ensure HTTPProvider implements Provider
var _ Provider = (*HTTPProvider)(nil)

// Name identifies the provider in logs and usage events.
func (p *HTTPProvider) Name() string {
	return p.name
}

// Restore uploads the image to the model endpoint and returns the result.
func (p *HTTPProvider) Restore(ctx context.Context, image []byte, contentType string) (*Result, error) {
	start := time.Now()

	body, formContentType, err := buildImageForm(image, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", formContentType)
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call provider %s: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Provider: p.name,
			Category: classifyStatus(resp.StatusCode),
			Status:   resp.StatusCode,
		}
	}

	var data restoreResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProviderResponseSize)).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	if data.ResultURL == "" {
		return nil, fmt.Errorf("provider %s returned no result URL", p.name)
	}

	elapsed := uint64(time.Since(start).Milliseconds())
	if data.ProcessingTimeMs > 0 {
		elapsed = data.ProcessingTimeMs
	}

	model := data.Model
	if model == "" {
		model = p.name
	}

	p.logger.Infow("image restored",
		"provider", p.name,
		"model", model,
		"elapsed_ms", elapsed,
	)

	return &Result{
		ResultURL: data.ResultURL,
		ModelID:   model,
		ElapsedMs: elapsed,
	}, nil
}

// buildImageForm wraps the image bytes in a multipart form under the "image"
// field, preserving the sniffed content type.
func buildImageForm(image []byte, contentType string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="image"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", fmt.Errorf("failed to write image to form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}
