// Package gateway talks to the remote Shaggy Mission services. Each
// operation is a single JSON request/response and is never retried.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/pkg/config"
	"github.com/shaggymission/adoption-web/internal/pkg/metrics"
)

const maxResponseBytes = 1 << 20

// Operation names, used for logs, metrics, and error messages.
const (
	opLogin           = "login"
	opLogout          = "logout"
	opRecoverPassword = "recover_password"
	opRegisterUser    = "register_user"
	opLookupRole      = "lookup_role"
	opListUsers       = "list_users"
	opDeleteUser      = "delete_user"
	opListPets        = "list_pets"
	opRegisterPet     = "register_pet"
	opUpdatePet       = "update_pet"
	opDeletePet       = "delete_pet"
	opSearchPets      = "search_pets_by_breed"
	opSubmitAdoption  = "submit_adoption_request"
	opListAdoptions   = "list_adoption_requests"
)

// Gateway implements every remote port the page controllers consume.
type Gateway struct {
	http      *http.Client
	endpoints config.GatewayConfig
	log       zerolog.Logger
}

// New builds a Gateway. A zero timeout disables the client timeout; the
// request context still applies.
func New(cfg config.GatewayConfig, log zerolog.Logger) *Gateway {
	return NewWithTransport(cfg, nil, log)
}

// NewWithTransport allows tests to inject a RoundTripper.
func NewWithTransport(cfg config.GatewayConfig, tr http.RoundTripper, log zerolog.Logger) *Gateway {
	if tr == nil {
		tr = http.DefaultTransport
	}
	return &Gateway{
		http:      &http.Client{Timeout: cfg.Timeout, Transport: tr},
		endpoints: cfg,
		log:       log.With().Str("component", "gateway").Logger(),
	}
}

type call struct {
	op      string
	method  string
	url     string
	headers map[string]string
	in      any
	out     any
}

// do executes one call. It returns the response headers on success.
//
// Non-2xx answers become *domain.RemoteError. Transport failures wrap
// domain.ErrUpstreamUnavailable and, when the caller gave up, ctx.Err().
func (g *Gateway) do(ctx context.Context, c call) (http.Header, error) {
	start := time.Now()
	hdr, err := g.roundTrip(ctx, c)
	metrics.GatewayRequestDuration.WithLabelValues(c.op).Observe(time.Since(start).Seconds())
	metrics.GatewayRequestsTotal.WithLabelValues(c.op, outcome(err)).Inc()

	if err != nil {
		ev := g.log.Warn()
		var re *domain.RemoteError
		if errors.As(err, &re) {
			ev = ev.Int("status", re.Status)
		}
		ev.Err(err).Str("operation", c.op).Dur("elapsed", time.Since(start)).Msg("remote call failed")
		return nil, err
	}
	g.log.Debug().Str("operation", c.op).Dur("elapsed", time.Since(start)).Msg("remote call")
	return hdr, nil
}

func (g *Gateway) roundTrip(ctx context.Context, c call) (http.Header, error) {
	var body io.Reader
	if c.in != nil {
		b, err := json.Marshal(c.in)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", c.op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, c.url, body)
	if err != nil {
		return nil, fmt.Errorf("%s: new request: %w", c.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		if strings.TrimSpace(k) == "" || v == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w: %w", c.op, domain.ErrUpstreamUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%s: %w: %w", c.op, domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.RemoteError{
			Operation: c.op,
			Status:    resp.StatusCode,
			Message:   serverMessage(raw),
		}
	}

	if c.out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, c.out); err != nil {
			return nil, fmt.Errorf("%s: decode response: %w", c.op, err)
		}
	}
	return resp.Header, nil
}

// serverMessage extracts the human-readable text of an error body.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func outcome(err error) string {
	var re *domain.RemoteError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &re):
		return "remote_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "transport_error"
	}
}

// recordURL appends an escaped id as the final path segment of base.
func recordURL(base, id string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(id)
}

// pageURL sets the page query parameter on base.
func pageURL(base string, page int) string {
	u, err := url.Parse(base)
	if err != nil {
		return fmt.Sprintf("%s?page=%d", base, page)
	}
	q := u.Query()
	q.Set("page", fmt.Sprint(page))
	u.RawQuery = q.Encode()
	return u.String()
}
