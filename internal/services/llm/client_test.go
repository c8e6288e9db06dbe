package llm_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"coursecast/internal/services/llm"
)

func completionBody(content string) string {
	return `{
		"choices": [{"message": {"content": ` + jsonString(content) + `}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 20, "total_tokens": 30}
	}`
}

func jsonString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

func newClient(t *testing.T, url string, opts ...llm.Option) *llm.Client {
	t.Helper()
	base := []llm.Option{
		llm.WithRetryMaxAttempts(3),
		llm.WithRetryBackoff(time.Millisecond, time.Millisecond),
		llm.WithSleeper(func(time.Duration) {}),
	}
	return llm.NewClient(llm.Config{APIKey: "test-key", BaseURL: url, Model: "test-model"}, append(base, opts...)...)
}

func TestCompleteParsesContentAndUsage(t *testing.T) {
	var authHeader atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader.Store(r.Header.Get("Authorization"))
		w.Write([]byte(completionBody("# Processed\n\ntext")))
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	result, err := client.Complete(t.Context(), "system", "user")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if result.Content != "# Processed\n\ntext" {
		t.Fatalf("unexpected content: %q", result.Content)
	}
	if result.Usage.TotalTokens != 30 {
		t.Fatalf("usage lost: %+v", result.Usage)
	}
	if got := authHeader.Load(); got != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %v", got)
	}
}

func TestCompleteRetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(completionBody("ok")))
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	result, err := client.Complete(t.Context(), "system", "user")
	if err != nil {
		t.Fatalf("Complete failed after retries: %v", err)
	}
	if result.Content != "ok" || calls.Load() != 3 {
		t.Fatalf("unexpected retry behavior: content=%q calls=%d", result.Content, calls.Load())
	}
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newClient(t, server.URL)
	if _, err := client.Complete(t.Context(), "system", "user"); err == nil {
		t.Fatal("expected error for 401")
	}
	if calls.Load() != 1 {
		t.Fatalf("client error retried: %d calls", calls.Load())
	}
}

func TestCompleteRequiresPromptsAndKey(t *testing.T) {
	client := llm.NewClient(llm.Config{})
	if _, err := client.Complete(t.Context(), "", "user"); err == nil {
		t.Fatal("expected error for empty system prompt")
	}
	if _, err := client.Complete(t.Context(), "system", "user"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestProcessorWritesMarkdown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("# Lesson Notes")))
	}))
	defer server.Close()

	dir := t.TempDir()
	source := filepath.Join(dir, "lesson1.txt")
	if err := os.WriteFile(source, []byte("raw transcription"), 0o644); err != nil {
		t.Fatalf("write transcription: %v", err)
	}

	processor := llm.NewProcessor(newClient(t, server.URL), "")
	outputDir := filepath.Join(dir, "processed")
	dest, usage, err := processor.Process(t.Context(), source, outputDir)
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}
	if filepath.Base(dest) != "lesson1.md" {
		t.Fatalf("unexpected output name: %s", dest)
	}
	if usage.TotalTokens != 30 {
		t.Fatalf("usage lost: %+v", usage)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "# Lesson Notes") {
		t.Fatalf("unexpected output: %q", data)
	}
}

func TestProcessorRejectsEmptyTranscription(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(source, []byte("   \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	processor := llm.NewProcessor(newClient(t, "http://127.0.0.1:0"), "")
	if _, _, err := processor.Process(t.Context(), source, dir); err == nil {
		t.Fatal("expected error for empty transcription")
	}
}
