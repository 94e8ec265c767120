package store

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/schoolkeuze/duosync/pkg/errors"
)

const (
	schoolsEndpoint = "/rest/v1/schools"
	metricsEndpoint = "/rest/v1/school_metrics"

	schoolSelect = "id,name,address,website_url,duo_school_id,postcode,street,house_nr,house_nr_suffix"

	// The snapshot is bounded; one page is enough.
	listLimit = "1000"

	defaultHTTPTimeout = 30 * time.Second
	defaultBatchSize   = 200
	defaultPace        = 100 * time.Millisecond
)

// Supabase talks to the canonical store through its PostgREST API using a
// service-role key. All calls are serial request/response; a non-success
// response is fatal and surfaces the status and body verbatim.
type Supabase struct {
	baseURL   string
	key       string
	http      *http.Client
	batchSize int
	pace      time.Duration
}

var _ Store = (*Supabase)(nil)

// Option configures a Supabase client.
type Option func(*Supabase)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Supabase) { s.http = c }
}

// WithBatchSize sets the metric insertion batch size.
func WithBatchSize(n int) Option {
	return func(s *Supabase) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithPace sets the delay between successive metric insert batches.
func WithPace(d time.Duration) Option {
	return func(s *Supabase) { s.pace = d }
}

// NewSupabase creates a Supabase-backed Store.
func NewSupabase(baseURL, serviceKey string, opts ...Option) *Supabase {
	s := &Supabase{
		baseURL:   strings.TrimRight(baseURL, "/"),
		key:       serviceKey,
		http:      &http.Client{Timeout: defaultHTTPTimeout},
		batchSize: defaultBatchSize,
		pace:      defaultPace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListSchools implements Store.
func (s *Supabase) ListSchools(ctx context.Context) ([]School, error) {
	params := url.Values{
		"select": {schoolSelect},
		"limit":  {listLimit},
	}
	var schools []School
	if err := s.do(ctx, http.MethodGet, schoolsEndpoint+"?"+params.Encode(), nil, &schools); err != nil {
		return nil, err
	}
	return schools, nil
}

// UpdateSchool implements Store.
func (s *Supabase) UpdateSchool(ctx context.Context, id string, fields map[string]any) error {
	params := url.Values{"id": {"eq." + id}}
	return s.do(ctx, http.MethodPatch, schoolsEndpoint+"?"+params.Encode(), fields, nil)
}

// ReplaceMetrics implements Store.
func (s *Supabase) ReplaceMetrics(ctx context.Context, schoolIDs []string, rows []Metric) error {
	if len(schoolIDs) > 0 {
		filter := "in.(" + strings.Join(schoolIDs, ",") + ")"
		params := url.Values{"school_id": {filter}}
		if err := s.do(ctx, http.MethodDelete, metricsEndpoint+"?"+params.Encode(), nil, nil); err != nil {
			return err
		}
	}

	for start := 0; start < len(rows); start += s.batchSize {
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.do(ctx, http.MethodPost, metricsEndpoint, rows[start:end], nil); err != nil {
			return err
		}
		// Pace successive batches to respect the store's throughput limits.
		if end < len(rows) && s.pace > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.pace):
			}
		}
	}
	return nil
}

// do issues one authenticated request. out, when non-nil, receives the
// decoded JSON response body.
func (s *Supabase) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WrapParse("json", endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return errors.WrapIO("request", endpoint, err)
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPatch || method == http.MethodPost {
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return errors.WrapIO("request", endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewAPIError(resp.StatusCode, resp.Status, endpoint, string(data))
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.WrapParse("json", endpoint, err)
		}
	}
	return nil
}
