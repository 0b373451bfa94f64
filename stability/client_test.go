package stability

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestGenerate(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq GenerateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"artifacts": []Artifact{{
				Base64:       base64.StdEncoding.EncodeToString([]byte("payload")),
				FinishReason: FinishSuccess,
			}},
		})
	}))
	defer server.Close()

	client := NewClient("secret", WithBaseURL(server.URL))
	artifacts, err := client.Generate(context.Background(), GenerateRequest{
		TextPrompts: []TextPrompt{{Text: "a cat"}},
		Seed:        42,
		Steps:       30,
		CfgScale:    8.0,
		Width:       512,
		Height:      512,
		Samples:     1,
		Sampler:     SamplerKDPMPP2M,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if gotPath != "/v1/generation/"+DefaultEngine+"/text-to-image" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if len(gotReq.TextPrompts) != 1 || gotReq.TextPrompts[0].Text != "a cat" {
		t.Errorf("prompts on the wire = %+v", gotReq.TextPrompts)
	}
	if gotReq.Sampler != SamplerKDPMPP2M {
		t.Errorf("sampler on the wire = %q", gotReq.Sampler)
	}

	if len(artifacts) != 1 {
		t.Fatalf("got %d artifacts, expected 1", len(artifacts))
	}
	// untagged artifacts with a payload count as images
	if artifacts[0].Type != ArtifactImage {
		t.Errorf("artifact type = %q, expected %q", artifacts[0].Type, ArtifactImage)
	}
	data, err := artifacts[0].Image()
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("payload = %q", data)
	}
}

func TestGenerateAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"name": "unauthorized", "message": "invalid api key"})
	}))
	defer server.Close()

	client := NewClient("bad-key", WithBaseURL(server.URL))
	_, err := client.Generate(context.Background(), GenerateRequest{})
	if err == nil {
		t.Fatal("Generate() succeeded against a 401 response")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("error %q does not carry the API message", err)
	}
}

func TestGenerateContextCancel(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("key", WithBaseURL(server.URL))
	if _, err := client.Generate(ctx, GenerateRequest{}); err == nil {
		t.Fatal("Generate() ignored a cancelled context")
	}
}
