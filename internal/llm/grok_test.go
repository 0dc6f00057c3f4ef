package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatStub mimics an OpenAI-compatible chat completions endpoint
func chatStub(t *testing.T, content string, usage map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Unexpected Authorization header: %s", auth)
		}

		resp := map[string]interface{}{
			"id":    "cmpl-1",
			"model": "grok-4-fast",
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
			"usage": usage,
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestNewGrokProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewGrokProvider(Config{}, "grok")
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}

func TestGrokProvider_Complete(t *testing.T) {
	server := chatStub(t, "hello", map[string]int{
		"completion_tokens": 5,
		"total_tokens":      12,
	})
	defer server.Close()

	provider, err := NewGrokProvider(Config{APIKey: "test-key", BaseURL: server.URL}, "grok")
	if err != nil {
		t.Fatalf("NewGrokProvider failed: %v", err)
	}

	resp, err := provider.Complete(context.Background(), CompletionRequest{
		Model:  "grok-4-fast",
		Prompt: "hi",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if resp.Content != "hello" {
		t.Errorf("Content = %q, want hello", resp.Content)
	}
	if resp.Usage.CompletionTokens != 5 || resp.Usage.TotalTokens != 12 {
		t.Errorf("Unexpected usage: %+v", resp.Usage)
	}
}

func TestGrokProvider_Complete_RequiresModel(t *testing.T) {
	provider, err := NewGrokProvider(Config{APIKey: "test-key"}, "grok")
	if err != nil {
		t.Fatalf("NewGrokProvider failed: %v", err)
	}

	if _, err := provider.Complete(context.Background(), CompletionRequest{Prompt: "hi"}); err == nil {
		t.Error("Expected error for missing model")
	}
}

func TestGrokProvider_Complete_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "boom"}}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	provider, err := NewGrokProvider(Config{APIKey: "test-key", BaseURL: server.URL}, "grok")
	if err != nil {
		t.Fatalf("NewGrokProvider failed: %v", err)
	}

	if _, err := provider.Complete(context.Background(), CompletionRequest{Model: "m", Prompt: "hi"}); err == nil {
		t.Error("Expected error for upstream 500")
	}
}

func TestNewProvider_Factory(t *testing.T) {
	if _, err := NewProvider(Config{Provider: "grok", APIKey: "k"}); err != nil {
		t.Errorf("Expected grok provider, got error: %v", err)
	}

	if _, err := NewProvider(Config{Provider: "openai", APIKey: "k"}); err != nil {
		t.Errorf("Expected openai provider, got error: %v", err)
	}

	provider, err := NewProvider(Config{Provider: ""})
	if err != nil || provider != nil {
		t.Errorf("Expected disabled provider (nil, nil), got %v, %v", provider, err)
	}

	if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
