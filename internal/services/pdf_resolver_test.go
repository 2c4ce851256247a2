package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

type recordingOpener struct {
	urls []string
}

func (o *recordingOpener) Open(u string) error {
	o.urls = append(o.urls, u)
	return nil
}

func TestResolve_PrefersLocationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer anon-key" {
			t.Errorf("missing bearer token, got %q", got)
		}
		if got := r.URL.Query().Get("id"); got != "abc" {
			t.Errorf("unexpected id %q", got)
		}
		w.Header().Set("Location", "https://x/doc.pdf")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"url":"https://x/ignored.pdf"}`))
	}))
	defer srv.Close()

	opener := &recordingOpener{}
	r := PDFResolver{BaseURL: srv.URL, Token: "anon-key", Opener: opener}
	r.Resolve(context.Background(), "abc", "https://x/fallback.pdf")

	if len(opener.urls) != 1 || opener.urls[0] != "https://x/doc.pdf" {
		t.Fatalf("expected the Location header URL to open, got %v", opener.urls)
	}
}

func TestResolve_FallsBackToJSONURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"url":"https://x/doc.pdf"}`))
	}))
	defer srv.Close()

	opener := &recordingOpener{}
	r := PDFResolver{BaseURL: srv.URL, Token: "anon-key", Opener: opener}
	r.Resolve(context.Background(), "abc", "")

	if len(opener.urls) != 1 || opener.urls[0] != "https://x/doc.pdf" {
		t.Fatalf("expected the JSON url to open, got %v", opener.urls)
	}
}

func TestResolve_NotFoundOpensFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"PDF not found"}`))
	}))
	defer srv.Close()

	opener := &recordingOpener{}
	r := PDFResolver{BaseURL: srv.URL, Token: "anon-key", Opener: opener}
	r.Resolve(context.Background(), "abc", "https://x/fallback.pdf")

	if len(opener.urls) != 1 || opener.urls[0] != "https://x/fallback.pdf" {
		t.Fatalf("expected fallback URL, got %v", opener.urls)
	}
}

func TestResolve_NotFoundWithoutFallbackOpensNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	opener := &recordingOpener{}
	r := PDFResolver{BaseURL: srv.URL, Token: "anon-key", Opener: opener}
	// must not panic, must not open anything
	r.Resolve(context.Background(), "abc", "")

	if len(opener.urls) != 0 {
		t.Fatalf("nothing should open without a fallback, got %v", opener.urls)
	}
}

func TestResolve_BodyWithoutURLDegradesToFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	opener := &recordingOpener{}
	r := PDFResolver{BaseURL: srv.URL, Token: "anon-key", Opener: opener}
	r.Resolve(context.Background(), "abc", "https://x/fallback.pdf")

	if len(opener.urls) != 1 || opener.urls[0] != "https://x/fallback.pdf" {
		t.Fatalf("expected fallback when the body carries no URL, got %v", opener.urls)
	}
}

func TestResolve_NoIDOpensFallbackDirectly(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	opener := &recordingOpener{}
	r := PDFResolver{BaseURL: srv.URL, Token: "anon-key", Opener: opener}
	r.Resolve(context.Background(), "", "https://x/direct.pdf")

	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("no request may be issued without an id")
	}
	if len(opener.urls) != 1 || opener.urls[0] != "https://x/direct.pdf" {
		t.Fatalf("expected the direct link to open, got %v", opener.urls)
	}
}
