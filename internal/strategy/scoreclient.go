package strategy

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Bapt252/Commitment--sub002/internal/types"
)

//go:embed score_schema.json
var scoreSchemaJSON string

// HTTPScoreClient talks to the remote scoring collaborator over HTTP and
// validates every response body against the embedded JSON schema before
// trusting it.
type HTTPScoreClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	schema  *gojsonschema.Schema
}

// NewHTTPScoreClient builds a client for the remote scoring service.
func NewHTTPScoreClient(baseURL, apiKey string, timeout time.Duration) (*HTTPScoreClient, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(scoreSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile score response schema: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &HTTPScoreClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		schema:  schema,
	}, nil
}

type scoreRequest struct {
	Candidate types.Candidate `json:"candidate"`
	Job       types.JobOffer  `json:"job"`
}

type scoreResponse struct {
	Overall    float64                `json:"overall"`
	Criteria   []types.CriterionScore `json:"criteria"`
	Confidence types.Confidence       `json:"confidence"`
}

// Score implements ScoreClient.
func (c *HTTPScoreClient) Score(ctx context.Context, candidate types.Candidate, job types.JobOffer) (RemoteScore, error) {
	body, err := json.Marshal(scoreRequest{Candidate: candidate, Job: job})
	if err != nil {
		return RemoteScore{}, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/score", bytes.NewReader(body))
	if err != nil {
		return RemoteScore{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return RemoteScore{}, fmt.Errorf("score request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return RemoteScore{}, fmt.Errorf("failed to read score response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return RemoteScore{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	if err := c.validate(data); err != nil {
		return RemoteScore{}, err
	}

	var parsed scoreResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return RemoteScore{}, fmt.Errorf("failed to decode score response: %w", err)
	}

	return RemoteScore{
		Overall:    parsed.Overall,
		Criteria:   parsed.Criteria,
		Confidence: parsed.Confidence,
	}, nil
}

// validate checks the raw response body against the embedded schema.
func (c *HTTPScoreClient) validate(data []byte) error {
	result, err := c.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("score response is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]
	field := first.Field()
	if field == "" {
		field = "(root)"
	}
	return fmt.Errorf("score response violates schema at %s: %s", field, first.Description())
}
