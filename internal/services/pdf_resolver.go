package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"normadeck/internal/utils"
)

// Opener abstracts "open this URL in a new browsing context" so the
// resolution logic can be exercised without a real browser.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a plain function to the Opener interface.
type OpenerFunc func(url string) error

func (f OpenerFunc) Open(url string) error { return f(url) }

// PDFResolver turns a record id into the PDF's real location through the
// get-pdf endpoint and opens it. Resolution is best effort: any failure
// degrades to the direct fallback URL, and with no fallback the failure is
// swallowed with a diagnostic log line. A broken download must never take
// the surrounding view down with it.
type PDFResolver struct {
	BaseURL   string
	Token     string
	Client    *http.Client
	Opener    Opener
	RequestID string
}

// Resolve opens the PDF for the given record. Without an id the fallback is
// opened directly; that is the only path for entries that never had one.
// Two calls with the same id perform two independent resolutions.
func (r PDFResolver) Resolve(ctx context.Context, id, fallbackURL string) {
	if strings.TrimSpace(id) == "" {
		if fallbackURL != "" {
			r.open(fallbackURL)
		}
		return
	}

	target, err := r.resolveURL(ctx, id)
	if err != nil {
		utils.LogEvent(r.RequestID, "download", "resolve_failed", "id="+id+" err="+err.Error())
		if fallbackURL != "" {
			r.open(fallbackURL)
		}
		return
	}
	r.open(target)
}

func (r PDFResolver) resolveURL(ctx context.Context, id string) (string, error) {
	endpoint := strings.TrimRight(r.BaseURL, "/") + "/functions/get-pdf?id=" + url.QueryEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+r.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("estado HTTP %d", resp.StatusCode)
	}

	// The endpoint encodes the result twice: a Location header and a JSON
	// body. The header wins when present.
	if loc := resp.Header.Get("Location"); loc != "" {
		return loc, nil
	}

	var body struct {
		Error    string `json:"error"`
		URL      string `json:"url"`
		Location string `json:"location"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.Error != "" {
		return "", errors.New(body.Error)
	}
	if u := utils.FirstNonEmpty(body.URL, body.Location); u != "" {
		return u, nil
	}
	return "", errors.New("resposta sem URL do PDF")
}

func (r PDFResolver) open(u string) {
	if r.Opener == nil {
		return
	}
	if err := r.Opener.Open(u); err != nil {
		utils.LogEvent(r.RequestID, "download", "open_failed", err.Error())
	}
}

func (r PDFResolver) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}
