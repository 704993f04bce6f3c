package classifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sairajesh711/premier-top6/internal/classifier"
	"github.com/sairajesh711/premier-top6/internal/logger"
)

func TestHTTPClient_RequestShape(t *testing.T) {
	var captured struct {
		auth        string
		contentType string
		body        map[string]any
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		captured.auth = r.Header.Get("Authorization")
		captured.contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&captured.body); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"verdict\":\"reasonable\",\"reason\":\"ok\"}"}}]}`))
	}))
	defer server.Close()

	client := classifier.NewHTTPClientWithHTTPClient(server.URL, "test-key", "gpt-3.5-turbo", server.Client(), logger.New())

	got, err := client.Classify(context.Background(), []string{"Liverpool", "Arsenal"})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if got != `{"verdict":"reasonable","reason":"ok"}` {
		t.Errorf("unexpected reply text: %q", got)
	}

	if captured.auth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want %q", captured.auth, "Bearer test-key")
	}
	if captured.contentType != "application/json" {
		t.Errorf("Content-Type = %q", captured.contentType)
	}
	if captured.body["model"] != "gpt-3.5-turbo" {
		t.Errorf("model = %v", captured.body["model"])
	}

	rf, ok := captured.body["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Errorf("response_format = %v", captured.body["response_format"])
	}

	messages, ok := captured.body["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("messages = %v", captured.body["messages"])
	}
	system := messages[0].(map[string]any)
	if system["role"] != "system" {
		t.Errorf("first message role = %v", system["role"])
	}
	user := messages[1].(map[string]any)
	content, _ := user["content"].(string)
	if !strings.HasPrefix(content, "Top-6: ") {
		t.Errorf("user content = %q, want Top-6: prefix", content)
	}
	if !strings.Contains(content, `"Liverpool"`) || !strings.Contains(content, `"Arsenal"`) {
		t.Errorf("user content missing picks: %q", content)
	}
}

func TestHTTPClient_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := classifier.NewHTTPClientWithHTTPClient(server.URL, "k", "m", server.Client(), logger.New())

	_, err := client.Classify(context.Background(), []string{"Liverpool"})
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status code: %v", err)
	}
}

func TestHTTPClient_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := classifier.NewHTTPClientWithHTTPClient(server.URL, "k", "m", server.Client(), logger.New())

	_, err := client.Classify(context.Background(), []string{"Liverpool"})
	if err == nil {
		t.Fatal("expected error for error envelope")
	}
	if !strings.Contains(err.Error(), "model not found") {
		t.Errorf("error should carry the API message: %v", err)
	}
}

func TestHTTPClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := classifier.NewHTTPClientWithHTTPClient(server.URL, "k", "m", server.Client(), logger.New())

	_, err := client.Classify(context.Background(), []string{"Liverpool"})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestHTTPClient_UnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := classifier.NewHTTPClientWithHTTPClient(server.URL, "k", "m", &http.Client{}, logger.New())

	_, err := client.Classify(context.Background(), []string{"Liverpool"})
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestHTTPClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := classifier.NewHTTPClientWithHTTPClient(server.URL, "k", "m", server.Client(), logger.New())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Classify(ctx, []string{"Liverpool"})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
