package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/akarpov/feedlens/internal/model"
)

func apiStub(t *testing.T, insightsStatus, analyzeStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("X-API-Key = %q, want test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/insights":
			w.WriteHeader(insightsStatus)
			if insightsStatus == http.StatusOK {
				json.NewEncoder(w).Encode(model.InsightsResponse{Insights: []string{"one", "two", "three"}})
			}
		case "/analyze":
			w.WriteHeader(analyzeStatus)
			if analyzeStatus == http.StatusOK {
				json.NewEncoder(w).Encode(model.AnalyzeResponse{
					Topics: []model.TopicWeight{{Topic: "AI", Weight: 1.0}},
				})
			}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestClient_Insights_Success(t *testing.T) {
	srv := apiStub(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	insights := c.Insights(context.Background(), "elonmusk")
	if len(insights) != 3 || insights[0] != "one" {
		t.Errorf("insights = %v, want [one two three]", insights)
	}
}

func TestClient_Insights_FallsBackOnError(t *testing.T) {
	srv := apiStub(t, http.StatusInternalServerError, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	insights := c.Insights(context.Background(), "elonmusk")
	if len(insights) != 1 {
		t.Fatalf("insights = %v, want single fallback element", insights)
	}
	if !strings.Contains(insights[0], "@elonmusk") {
		t.Errorf("fallback missing username: %q", insights[0])
	}
}

func TestClient_Insights_FallsBackOnTransportFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "test-key", 200*time.Millisecond)
	insights := c.Insights(context.Background(), "elonmusk")
	if len(insights) != 1 {
		t.Errorf("insights = %v, want single fallback element", insights)
	}
}

func TestClient_Analyze_Success(t *testing.T) {
	srv := apiStub(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	resp, err := c.Analyze(context.Background(), "elonmusk")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(resp.Topics) != 1 || resp.Topics[0].Topic != "AI" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestClient_Analyze_StatusCodeInError(t *testing.T) {
	srv := apiStub(t, http.StatusOK, http.StatusBadGateway)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	_, err := c.Analyze(context.Background(), "elonmusk")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q missing status code", err)
	}
}

func TestClient_Analyze_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	if _, err := c.Analyze(context.Background(), "a"); err == nil {
		t.Fatal("expected error")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("analyze called %d times, want 1", n)
	}
}

func TestClient_Submit_BothPaths(t *testing.T) {
	srv := apiStub(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	sub := c.Submit(context.Background(), "elonmusk")
	if sub.Err != nil {
		t.Fatalf("slow path: %v", sub.Err)
	}
	if len(sub.Insights) != 3 {
		t.Errorf("insights = %v", sub.Insights)
	}
	if sub.Response == nil || len(sub.Response.Topics) != 1 {
		t.Errorf("response = %+v", sub.Response)
	}
	if sub.Stale() {
		t.Error("only submission should not be stale")
	}
}

func TestClient_Submit_SlowPathFailureKeepsInsights(t *testing.T) {
	srv := apiStub(t, http.StatusOK, http.StatusInternalServerError)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	sub := c.Submit(context.Background(), "elonmusk")
	if sub.Err == nil {
		t.Fatal("expected slow-path error")
	}
	if len(sub.Insights) != 3 {
		t.Errorf("fast path should survive slow-path failure, got %v", sub.Insights)
	}
}

func TestClient_Submit_StaleToken(t *testing.T) {
	srv := apiStub(t, http.StatusOK, http.StatusOK)
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Second)
	first := c.Submit(context.Background(), "elonmusk")
	second := c.Submit(context.Background(), "jack")

	if !first.Stale() {
		t.Error("superseded submission should be stale")
	}
	if second.Stale() {
		t.Error("latest submission should not be stale")
	}
}

func TestClient_SubmitAsync_InsightsBeforeReport(t *testing.T) {
	reportGate := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/insights":
			json.NewEncoder(w).Encode(model.InsightsResponse{Insights: []string{"fast"}})
		case "/analyze":
			<-reportGate
			json.NewEncoder(w).Encode(model.AnalyzeResponse{})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 5*time.Second)
	insightsCh, done := c.SubmitAsync(context.Background(), "a")

	select {
	case insights := <-insightsCh:
		if len(insights) != 1 || insights[0] != "fast" {
			t.Errorf("insights = %v", insights)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("insights did not arrive while report was outstanding")
	}

	close(reportGate)
	select {
	case sub := <-done:
		if sub.Err != nil {
			t.Errorf("slow path: %v", sub.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submission never resolved")
	}
}
