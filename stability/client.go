// Package stability is a minimal client for the Stability AI text-to-image
// REST endpoint. Only the single call imageforge needs is covered.
package stability

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"time"

	"github.com/Tushar-web474/ImageForge/util/common"

	"github.com/goccy/go-json"
)

const (
	DefaultBaseURL = "https://api.stability.ai"
	DefaultEngine  = "stable-diffusion-v1-6"

	// SamplerKDPMPP2M is the sampler used for all generations.
	SamplerKDPMPP2M = "K_DPMPP_2M"
)

// Finish reasons reported on artifacts.
const (
	FinishSuccess  = "SUCCESS"
	FinishFiltered = "CONTENT_FILTERED"
	FinishError    = "ERROR"
)

// ArtifactImage tags artifacts carrying an image payload.
const ArtifactImage = "image"

// Client calls the generation API. The zero value is not usable; construct
// with NewClient.
type Client struct {
	apiKey  string
	engine  string
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithEngine selects a different engine id.
func WithEngine(engine string) Option {
	return func(c *Client) { c.engine = engine }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		engine:  DefaultEngine,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TextPrompt is one weighted prompt line.
type TextPrompt struct {
	Text string `json:"text"`
}

// GenerateRequest carries the generation parameters.
type GenerateRequest struct {
	TextPrompts []TextPrompt `json:"text_prompts"`
	CfgScale    float64      `json:"cfg_scale"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Steps       int          `json:"steps"`
	Samples     int          `json:"samples"`
	Seed        int64        `json:"seed"`
	Sampler     string       `json:"sampler,omitempty"`
}

// Artifact is one unit of API output: an image payload or a filtered/empty
// result, tagged with a finish reason.
type Artifact struct {
	Base64       string `json:"base64"`
	Seed         int64  `json:"seed"`
	FinishReason string `json:"finishReason"`
	Type         string `json:"type"`
}

// Image decodes the artifact's binary payload.
func (a *Artifact) Image() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Base64)
}

type generateResponse struct {
	Artifacts []Artifact `json:"artifacts"`
}

type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Generate performs one text-to-image call and returns the artifacts.
// Cancellation and deadlines are taken from ctx.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) ([]Artifact, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := c.baseURL + "/v1/generation/" + c.engine + "/text-to-image"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, common.NewErrorf("generation API returned %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, common.NewErrorf("generation API returned %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, err
	}

	// Older API revisions omit the type tag; anything with a payload and no
	// tag is an image.
	for i := range genResp.Artifacts {
		if genResp.Artifacts[i].Type == "" && genResp.Artifacts[i].Base64 != "" {
			genResp.Artifacts[i].Type = ArtifactImage
		}
	}

	return genResp.Artifacts, nil
}
