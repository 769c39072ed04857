package checker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lukemcguire/mdlinkcheck/result"
)

const (
	// maxRedirects matches the net/http default.
	maxRedirects = 10

	// drainLimit caps how much of a body is read so the connection can be reused.
	drainLimit = 64 << 10
)

// Outcome is what a single probe learned about a URL.
type Outcome struct {
	URL        string
	Status     string
	OK         bool
	StatusCode int
	Category   result.ErrorCategory
}

// Prober checks the reachability of one URL.
//
// Network failures and error statuses are reported through Outcome. A
// non-nil error means the probe itself could not be performed, such as a
// URL that cannot form a request, and aborts the run.
type Prober interface {
	Probe(ctx context.Context, rawURL string) (Outcome, error)
}

// HTTPProber probes URLs with HEAD, falling back to GET when the server
// reports 405 or 501.
type HTTPProber struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// NewHTTPProber creates an HTTPProber using the timeout and user agent in cfg.
func NewHTTPProber(cfg Config) *HTTPProber {
	cfg = cfg.withDefaults()

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = cfg.Workers

	return &HTTPProber{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				// Stop and hand back the last 3xx; attempt reports it.
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		timeout:   cfg.Timeout,
	}
}

// Probe issues HEAD, and GET only if HEAD answered 405 or 501.
func (p *HTTPProber) Probe(ctx context.Context, rawURL string) (Outcome, error) {
	out, fallback, err := p.attempt(ctx, http.MethodHead, rawURL)
	if err != nil || !fallback {
		return out, err
	}

	log.Debug().Str("url", rawURL).Msg("HEAD not supported, retrying with GET")
	out, _, err = p.attempt(ctx, http.MethodGet, rawURL)
	return out, err
}

// attempt performs one request bounded by the prober timeout. fallback is
// true when a HEAD request was rejected with 405 or 501.
func (p *HTTPProber) attempt(ctx context.Context, method, rawURL string) (out Outcome, fallback bool, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, nil)
	if err != nil {
		return Outcome{URL: rawURL}, false, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Debug().Str("url", rawURL).Str("method", method).Err(err).Msg("Request failed")
		return connectionFailure(rawURL, err), false, nil
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		_ = resp.Body.Close()
	}()

	code := resp.StatusCode
	log.Debug().Str("url", rawURL).Str("method", method).Int("status", code).Msg("Response received")

	if method == http.MethodHead && (code == http.StatusMethodNotAllowed || code == http.StatusNotImplemented) {
		return Outcome{URL: rawURL}, true, nil
	}

	out = Outcome{
		URL:        rawURL,
		Status:     statusLine(resp),
		OK:         code >= 200 && code < 400,
		StatusCode: code,
	}
	if redirectAbandoned(resp) {
		out.OK = false
		out.Category = result.ClassifyError(nil, code, true)
		return out, false, nil
	}
	if !out.OK {
		out.Category = result.ClassifyError(nil, code, false)
	}
	return out, false, nil
}

// connectionFailure converts a transport error into a failed Outcome.
func connectionFailure(rawURL string, err error) Outcome {
	reason := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		reason = urlErr.Err
	}
	return Outcome{
		URL:      rawURL,
		Status:   "Connection error: " + reason.Error(),
		Category: result.ClassifyError(err, 0, false),
	}
}

// redirectAbandoned reports whether resp is a redirect the client would
// normally follow, which only surfaces after maxRedirects hops.
func redirectAbandoned(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return resp.Header.Get("Location") != ""
	}
	return false
}

// statusLine returns "<code> <reason>", using the server's reason phrase
// when it sent one.
func statusLine(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	status := strings.TrimSpace(resp.Status)
	if status != "" && status != code {
		return status
	}
	return strings.TrimSpace(code + " " + http.StatusText(resp.StatusCode))
}
