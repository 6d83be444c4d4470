package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	sdk "github.com/liushuangls/go-anthropic/v2"

	"hotelia/internal/adapters/anthropic"
	"hotelia/internal/domain"
)

// messagesStub serves a canned completion and captures the last request body.
func messagesStub(t *testing.T, completion string) (*httptest.Server, *[]byte) {
	t.Helper()
	var lastBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		lastBody = b

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "msg_test",
			"type":    "message",
			"role":    "assistant",
			"model":   "claude-sonnet-4-20250514",
			"content": []map[string]any{{"type": "text", "text": completion}},
			"usage":   map[string]any{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	return ts, &lastBody
}

func newClient(t *testing.T, baseURL string) *anthropic.Client {
	t.Helper()
	cl, err := anthropic.New("test-key", "", sdk.WithBaseURL(baseURL))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	return cl
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := anthropic.New("", "")
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAnalyzeSentiment_ParsesWrappedJSON(t *testing.T) {
	completion := "Here is the analysis:\n" +
		`{"sentiment": "Positive", "topics": ["Staff", "staff", " breakfast ", "", "pool", "wifi", "view", "noise"], "language": "TH"}`
	ts, body := messagesStub(t, completion)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := newClient(t, ts.URL).AnalyzeSentiment(ctx, "พนักงานดีมาก", 4.5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Sentiment != domain.SentimentPositive || got.Language != "th" {
		t.Fatalf("unexpected result: %+v", got)
	}
	// lowercased, trimmed, deduped, capped at five
	want := []string{"staff", "breakfast", "pool", "wifi", "view"}
	if !reflect.DeepEqual(got.Topics, want) {
		t.Fatalf("topics: got %v, want %v", got.Topics, want)
	}

	if !strings.Contains(string(*body), "Guest rating: 4.5/5 stars") {
		t.Fatalf("rating hint missing from prompt:\n%s", *body)
	}
}

func TestAnalyzeSentiment_UnknownLabelIsNeutral(t *testing.T) {
	ts, _ := messagesStub(t, `{"sentiment":"mixed","topics":[],"language":"en"}`)
	defer ts.Close()

	got, err := newClient(t, ts.URL).AnalyzeSentiment(context.Background(), "ok stay", 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Sentiment != domain.SentimentNeutral {
		t.Fatalf("got %q, want neutral", got.Sentiment)
	}
}

func TestAnalyzeSentiment_NoJSON(t *testing.T) {
	ts, _ := messagesStub(t, "I cannot analyze this review.")
	defer ts.Close()

	_, err := newClient(t, ts.URL).AnalyzeSentiment(context.Background(), "hi", 0)
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestGenerateReply_PromptAssembly(t *testing.T) {
	ts, body := messagesStub(t, "  Thank you for staying with us, Ana!  ")
	defer ts.Close()

	sent := domain.SentimentNegative
	reply, err := newClient(t, ts.URL).GenerateReply(context.Background(), domain.ReplyRequest{
		ReviewText:    "Room was noisy.",
		ReviewerName:  "Ana",
		Rating:        2,
		Platform:      domain.PlatformGoogle,
		HotelName:     "Seaside Inn",
		ReplyLanguage: "th",
		Sentiment:     &sent,
		Topics:        []string{"noise", "room"},
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if reply != "Thank you for staying with us, Ana!" {
		t.Fatalf("reply not trimmed: %q", reply)
	}

	req := string(*body)
	for _, want := range []string{
		"Seaside Inn",
		"Write the entire response in Thai",
		"Write a response to this google review",
		"Reviewer: Ana",
		"Rating: 2/5 stars",
		"Sentiment: negative",
		"Key topics: noise, room",
	} {
		if !strings.Contains(req, want) {
			t.Errorf("request missing %q:\n%s", want, req)
		}
	}
}

func TestGenerateReply_Defaults(t *testing.T) {
	ts, body := messagesStub(t, "Thanks!")
	defer ts.Close()

	_, err := newClient(t, ts.URL).GenerateReply(context.Background(), domain.ReplyRequest{
		ReviewText:   "Great stay",
		ReviewerName: "Lars",
		Rating:       5,
		Platform:     domain.PlatformOther,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	req := string(*body)
	if !strings.Contains(req, "our hotel") || !strings.Contains(req, "professional and friendly") {
		t.Fatalf("defaults missing:\n%s", req)
	}
	if strings.Contains(req, "Do not include any English") {
		t.Fatalf("language warning present for English reply")
	}
}

func TestTranslate_PromptNamesLanguages(t *testing.T) {
	ts, body := messagesStub(t, "ขอบคุณค่ะ")
	defer ts.Close()

	got, err := newClient(t, ts.URL).Translate(context.Background(), "Thank you", "en", "th")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "ขอบคุณค่ะ" {
		t.Fatalf("got %q", got)
	}
	req := string(*body)
	if !strings.Contains(req, "from English to Thai") {
		t.Fatalf("language names missing:\n%s", req)
	}
}

func TestTranslate_UnknownCodePassesThrough(t *testing.T) {
	ts, body := messagesStub(t, "hallo")
	defer ts.Close()

	if _, err := newClient(t, ts.URL).Translate(context.Background(), "hello", "", "nl"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(string(*body), "from the source language to nl") {
		t.Fatalf("fallbacks missing:\n%s", *body)
	}
}

func TestUpstreamErrorMapping(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Translate(context.Background(), "hi", "en", "th")
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Status != http.StatusTooManyRequests {
		t.Fatalf("status: got %d, want 429", ue.Status)
	}
	if ue.Service != "anthropic" {
		t.Fatalf("service: got %q", ue.Service)
	}
}
