package synth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cioinsight/deckgen/internal/model"
	"github.com/cioinsight/deckgen/internal/oauth"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return logrus.NewEntry(log)
}

func newTestJobClient(t *testing.T, handler http.Handler) (*JobClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := model.SynthesisConfig{
		Provider:     "job",
		AuthURL:      srv.URL + "/token",
		BaseURL:      srv.URL,
		ClientID:     "cid",
		ClientSecret: "secret",
		Model:        "gemini-3-pro-preview",
		TenantID:     "GOLDHORSE",
		ClientTag:    "CIO",
		UserID:       "deckgen",
		PollInterval: 5 * time.Millisecond,
		MaxPolls:     10,
	}
	httpCfg := model.HTTPConfig{Timeout: 5 * time.Second}
	tokens := oauth.NewClient(cfg.AuthURL, cfg.ClientID, cfg.ClientSecret, httpCfg.Timeout)
	return NewJobClient(cfg, httpCfg, tokens, testLog()), srv
}

func tokenResponse(w http.ResponseWriter, token string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": token,
		"expires_in":   3600,
	})
}

func TestJobClient_Synthesize(t *testing.T) {
	var tokenCalls, pollCalls atomic.Int32
	var submitted jobRequest

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenResponse(w, fmt.Sprintf("tok-%d", tokenCalls.Add(1)))
	})
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&submitted); err != nil {
			t.Errorf("submit body not JSON: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 42})
	})
	mux.HandleFunc("/job/JOB_ID/42", func(w http.ResponseWriter, r *http.Request) {
		switch pollCalls.Add(1) {
		case 1:
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "PROCESSING"})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "SUCCESS",
				"output": `{"document": {"title": "环球市场投资观点"}}`,
			})
		}
	})

	client, _ := newTestJobClient(t, mux)
	report, err := client.Synthesize(context.Background(), "prompt text")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if report.Document.Title != "环球市场投资观点" {
		t.Errorf("title = %q", report.Document.Title)
	}

	if submitted.Type != "callLlm" {
		t.Errorf("job type = %q", submitted.Type)
	}
	if submitted.Metadata.TenantID != "GOLDHORSE" || submitted.Metadata.ClientID != "CIO" {
		t.Errorf("metadata = %+v", submitted.Metadata)
	}
	if submitted.Metadata.ClientRequestID == "" {
		t.Error("clientRequestId not set")
	}
	if submitted.Input.Parameter.ModelName != "gemini-3-pro-preview" {
		t.Errorf("model = %q", submitted.Input.Parameter.ModelName)
	}
	if submitted.Input.Parameter.Prompt != "prompt text" {
		t.Errorf("prompt = %q", submitted.Input.Parameter.Prompt)
	}
}

// A 401 mid-poll must refresh the token and retry without burning an
// attempt.
func TestJobClient_PollReauth(t *testing.T) {
	var tokenCalls, pollCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenResponse(w, fmt.Sprintf("tok-%d", tokenCalls.Add(1)))
	})
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"uuid": "abc"})
	})
	mux.HandleFunc("/job/JOB_ID/abc", func(w http.ResponseWriter, r *http.Request) {
		if pollCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.Header.Get("Authorization"); got == "Bearer tok-1" {
			t.Errorf("poll after 401 still used the stale token")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "COMPLETED",
			"output": `{"document": {"title": "t"}}`,
		})
	})

	client, _ := newTestJobClient(t, mux)
	if _, err := client.Synthesize(context.Background(), "p"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if tokenCalls.Load() < 2 {
		t.Errorf("expected re-authentication, token endpoint hit %d times", tokenCalls.Load())
	}
}

func TestJobClient_PollRevokedCredential(t *testing.T) {
	var pollCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenResponse(w, "tok")
	})
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"uuid": "abc"})
	})
	mux.HandleFunc("/job/JOB_ID/abc", func(w http.ResponseWriter, r *http.Request) {
		pollCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestJobClient(t, mux)
	_, err := client.Synthesize(context.Background(), "p")
	if err == nil {
		t.Fatal("expected error for a credential the poll keeps rejecting")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want mention of the 401 rejection", err)
	}
	// One re-auth retry, then give up instead of spinning to the timeout.
	if got := pollCalls.Load(); got != 2 {
		t.Errorf("poll endpoint hit %d times, want 2", got)
	}
}

func TestJobClient_JobFailed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenResponse(w, "tok")
	})
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7})
	})
	mux.HandleFunc("/job/JOB_ID/7", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "FAILED", "error": "boom"})
	})

	client, _ := newTestJobClient(t, mux)
	if _, err := client.Synthesize(context.Background(), "p"); err == nil {
		t.Fatal("expected error for failed job")
	}
}

func TestJobClient_PollTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		tokenResponse(w, "tok")
	})
	mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 8})
	})
	mux.HandleFunc("/job/JOB_ID/8", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "PROCESSING"})
	})

	client, _ := newTestJobClient(t, mux)
	_, err := client.Synthesize(context.Background(), "p")
	if err == nil || !strings.Contains(err.Error(), "did not finish") {
		t.Fatalf("expected poll timeout error, got %v", err)
	}
}

func TestBuildContext(t *testing.T) {
	dir := t.TempDir()

	art := model.Article{
		Titles:   map[string]string{model.LocaleZhCN: "黄金：避险需求"},
		Contents: map[string]string{model.LocaleZhCN: "<p>金价<b>上行</b></p>"},
	}
	data, _ := json.Marshal(art)
	if err := os.WriteFile(filepath.Join(dir, "黄金_20260110.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := BuildContext(dir, testLog())
	if err != nil {
		t.Fatalf("BuildContext: %v", err)
	}
	if !strings.Contains(got, "--- 文档开始: 黄金_20260110.json (标题: 黄金：避险需求) ---") {
		t.Errorf("missing document header in:\n%s", got)
	}
	if !strings.Contains(got, "金价上行") {
		t.Error("HTML tags not stripped from context")
	}
	if strings.Contains(got, "broken") {
		t.Error("unparsable record leaked into context")
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if _, err := BuildContext(t.TempDir(), testLog()); err == nil {
		t.Error("expected error for empty articles dir")
	}
}
