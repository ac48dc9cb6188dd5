package plantid

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ErrAPIKeyMissing indicates the recognition service credential is not
// configured. It is the one error worth surfacing with a user-actionable
// message rather than a generic failure.
var ErrAPIKeyMissing = errors.New("plant identification API key is not configured")

const DefaultBaseURL = "https://api.plant.id/v2/identify"

// Client calls the external plant recognition service. All state is explicit
// configuration; there is no package-level default credential or mode.
type Client struct {
	APIKey     string
	BaseURL    string
	Language   string // language selector for common names, e.g. "et"
	HTTPClient *http.Client

	// Simulate substitutes a canned suggestion set when the credential is
	// missing or the service call fails, instead of surfacing an error.
	Simulate bool
}

// NewClient builds a client with sane defaults for anything left zero.
func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		Language:   "et",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type identifyRequest struct {
	APIKey       string   `json:"api_key"`
	Images       []string `json:"images"`
	Modifiers    []string `json:"modifiers"`
	Language     string   `json:"plant_language"`
	PlantDetails []string `json:"plant_details"`
}

// Identify sends image bytes to the recognition service and returns its
// ranked suggestions. A missing credential is a configuration error unless
// simulation is enabled; transport and non-2xx failures are surfaced as
// errors unless simulation substitutes placeholder data.
func (c *Client) Identify(ctx context.Context, imageData []byte) (*Response, error) {
	if c.APIKey == "" {
		if c.Simulate {
			log.Printf("plantid: no API key configured, returning simulated suggestions")
			return simulatedResponse(), nil
		}
		return nil, ErrAPIKeyMissing
	}

	resp, err := c.callService(ctx, imageData)
	if err != nil {
		if c.Simulate {
			log.Printf("plantid: service call failed, substituting simulated suggestions: %v", err)
			return simulatedResponse(), nil
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) callService(ctx context.Context, imageData []byte) (*Response, error) {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload := identifyRequest{
		APIKey:       c.APIKey,
		Images:       []string{base64.StdEncoding.EncodeToString(imageData)},
		Modifiers:    []string{"crops_fast", "similar_images"},
		Language:     c.Language,
		PlantDetails: []string{"common_names", "url", "wiki_description", "taxonomy", "synonyms"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("plantid: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("plantid: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("plantid: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("plantid: API request failed with status code %d: %s", httpResp.StatusCode, snippet)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("plantid: failed to decode response: %w", err)
	}

	log.Printf("plantid: received %d suggestions from recognition service", len(resp.Suggestions))
	return &resp, nil
}
