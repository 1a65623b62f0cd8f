package scraper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Scraper fetches a single product page and extracts a Snapshot from it,
// re-fetching from scratch when extraction comes up short.
type Scraper struct {
	url     string
	headers map[string]string
	client  *http.Client
	log     zerolog.Logger
}

func New(url string, headers map[string]string, timeout time.Duration, log zerolog.Logger) *Scraper {
	return &Scraper{
		url:     url,
		headers: headers,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Retrieve runs fetch-parse cycles until a snapshot is extracted or the
// budget runs out, in which case it returns ErrExhausted. A missing field
// costs one unit of budget and discards the whole attempt, even if the other
// field was found. Transport and parse failures abort immediately without
// touching the budget. Attempts are strictly sequential.
func (s *Scraper) Retrieve(ctx context.Context, budget int) (Snapshot, error) {
	for remaining := budget; remaining > 0; remaining-- {
		markup, err := s.fetch(ctx)
		if err != nil {
			return Snapshot{}, err
		}

		snap, err := Extract(markup)
		if err != nil {
			var missing *MissingFieldError
			if errors.As(err, &missing) {
				s.log.Warn().
					Str("field", missing.Field).
					Int("remaining", remaining-1).
					Msg("could not extract field, retrying")
				continue
			}
			return Snapshot{}, err
		}

		return snap, nil
	}

	return Snapshot{}, ErrExhausted
}

func (s *Scraper) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", &TransportError{URL: s.url, Err: err}
	}
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{URL: s.url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: s.url, Err: err}
	}

	return string(body), nil
}
