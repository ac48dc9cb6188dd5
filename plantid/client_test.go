package plantid

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://plantid.test/v2/identify"

func newTestClient(t *testing.T, apiKey string) *Client {
	t.Helper()
	client := NewClient(apiKey)
	client.BaseURL = testBaseURL
	httpmock.ActivateNonDefault(client.HTTPClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

func TestClientIdentifyMissingKey(t *testing.T) {
	client := NewClient("")
	resp, err := client.Identify(context.Background(), []byte("image"))
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestClientIdentifyMissingKeySimulated(t *testing.T) {
	client := NewClient("")
	client.Simulate = true
	resp, err := client.Identify(context.Background(), []byte("image"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestClientIdentifySuccess(t *testing.T) {
	client := newTestClient(t, "test-key")

	var captured identifyRequest
	httpmock.RegisterResponder(http.MethodPost, testBaseURL,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&captured); err != nil {
				return httpmock.NewStringResponse(http.StatusBadRequest, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"suggestions": []map[string]interface{}{
					{"plant_name": "Taraxacum officinale", "probability": 0.95},
				},
			})
		})

	imageData := []byte("fake image bytes")
	resp, err := client.Identify(context.Background(), imageData)
	require.NoError(t, err)
	require.Len(t, resp.Suggestions, 1)
	assert.Equal(t, "Taraxacum officinale", resp.Suggestions[0].PlantName)

	assert.Equal(t, "test-key", captured.APIKey)
	assert.Equal(t, "et", captured.Language)
	assert.Equal(t, []string{"crops_fast", "similar_images"}, captured.Modifiers)
	require.Len(t, captured.Images, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString(imageData), captured.Images[0])
}

func TestClientIdentifyServiceError(t *testing.T) {
	client := newTestClient(t, "test-key")

	httpmock.RegisterResponder(http.MethodPost, testBaseURL,
		httpmock.NewStringResponder(http.StatusTooManyRequests, `{"error": "rate limited"}`))

	resp, err := client.Identify(context.Background(), []byte("image"))
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClientIdentifyServiceErrorSimulated(t *testing.T) {
	client := newTestClient(t, "test-key")
	client.Simulate = true

	httpmock.RegisterResponder(http.MethodPost, testBaseURL,
		httpmock.NewStringResponder(http.StatusInternalServerError, "boom"))

	resp, err := client.Identify(context.Background(), []byte("image"))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.NotEmpty(t, resp.Suggestions)
}

func TestSimulatedResponseRanking(t *testing.T) {
	resp := simulatedResponse()
	require.NotEmpty(t, resp.Suggestions)

	significant := 0
	for _, s := range resp.Suggestions {
		if s.Probability > 0.5 {
			significant++
		}
	}
	// the canned set includes both qualifying and below-threshold entries
	assert.Greater(t, significant, 0)
	assert.Less(t, significant, len(resp.Suggestions))
}
