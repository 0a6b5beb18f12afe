package cast

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/magmaskv/casttompv/internal/config"
	"github.com/magmaskv/casttompv/internal/debuglog"
	"github.com/magmaskv/casttompv/internal/logging"
)

// postDataPreview is how much of the /play body goes to the debug log.
const postDataPreview = 100

// Client sends cast requests to the receiver.
// The zero value is usable; it records nothing in a debug log.
type Client struct {
	// Log receives the request trace. Errors are always recorded;
	// everything else only while debug mode is on. May be nil.
	Log *debuglog.Log

	// Transport replaces the per-call transport. When nil, each call dials
	// a fresh connection bounded by the request's connect timeout.
	Transport http.RoundTripper

	// Dial opens the connection for the per-call transport. Nil uses a
	// net.Dialer. Ignored when Transport is set.
	Dial func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewClient creates a client that traces into log.
func NewClient(log *debuglog.Log) *Client {
	return &Client{Log: log}
}

func (c *Client) debug(msg string) {
	if c.Log != nil {
		c.Log.Debug(msg)
	}
}

func (c *Client) force(msg string) {
	if c.Log != nil {
		c.Log.Force(msg)
	}
}

// newTransport returns a single-use transport. Connect and response-header
// waits are each bounded by timeout; the body read is bounded in Send.
func newTransport(timeout time.Duration, dial func(ctx context.Context, network, addr string) (net.Conn, error)) *http.Transport {
	if dial == nil {
		dial = (&net.Dialer{Timeout: timeout}).DialContext
	}
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return dial(ctx, network, addr)
		},
		ResponseHeaderTimeout: timeout,
		DisableKeepAlives:     true,
	}
}

// Send issues exactly one POST for req to the receiver in cfg.
//
// A reply of any status returns a Result and a nil error; Result.Succeeded
// is true only for 200. Validation and transport failures return *Error.
// Nothing is retried.
func (c *Client) Send(ctx context.Context, cfg *config.Config, req *Request) (*Result, error) {
	if req == nil || !req.Endpoint.Valid() {
		err := NewValidationError("unknown endpoint", nil)
		c.force("Error in POST: " + err.Message)
		return nil, err
	}

	if cfg == nil {
		cfg = &config.Config{}
	}

	host := strings.TrimSpace(cfg.Host)
	port := strings.TrimSpace(cfg.Port)
	target := host + ":" + port

	switch req.Endpoint {
	case EndpointPlay:
		c.debug(fmt.Sprintf("Sending to PC (%s): %s", target, req.URL))
	case EndpointTest:
		c.debug("Testing detailed connection...")
	case EndpointTestVideo:
		c.debug("Testing video playback...")
	}

	if err := cfg.Validate(); err != nil {
		vErr := NewValidationError("Configure IP and port first", err)
		c.force(vErr.Message)
		return nil, vErr
	}

	endpointURL := fmt.Sprintf("http://%s/%s", target, req.Endpoint)
	timeout := req.timeout()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	body := req.Body()
	if req.Endpoint == EndpointPlay {
		c.debug("Preparing POST to " + endpointURL)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpointURL, strings.NewReader(body))
	if err != nil {
		nErr := NewNetworkError("failed to create POST request", target, err)
		c.force(c.failureLine(req.Endpoint, nErr))
		return nil, nErr
	}

	headers := req.Headers()
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	if req.Endpoint == EndpointPlay {
		c.debug(fmt.Sprintf("Device: %s (%s)", req.Name, req.Model))
		c.debug("POST data (first 100 chars): " + truncate(body, postDataPreview))
		c.debug("Sending data...")
	}

	logging.LogCastRequest(target, string(req.Endpoint), headers)

	transport := c.Transport
	if transport == nil {
		t := newTransport(timeout, c.Dial)
		defer t.CloseIdleConnections()
		transport = t
	}
	httpClient := &http.Client{Transport: transport}

	start := time.Now()
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		nErr := NewNetworkError("POST request failed", target, err)
		c.force(c.failureLine(req.Endpoint, nErr))
		return nil, nErr
	}
	defer func() { _ = resp.Body.Close() }()

	// bound the body read the same way the connect was bounded
	var readTimedOut atomic.Bool
	timer := time.AfterFunc(timeout, func() {
		readTimedOut.Store(true)
		cancel()
	})
	defer timer.Stop()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		var nErr *Error
		if readTimedOut.Load() {
			nErr = NewTimeoutError("timed out reading response", target, err)
		} else {
			nErr = NewNetworkError("failed to read response body", target, err)
		}
		c.force(c.failureLine(req.Endpoint, nErr))
		return nil, nErr
	}

	result := &Result{
		Endpoint:   req.Endpoint,
		StatusCode: resp.StatusCode,
		Status:     reasonPhrase(resp),
		Body:       string(data),
		Succeeded:  resp.StatusCode == http.StatusOK,
		Duration:   time.Since(start),
		DeviceName: req.Name,
	}

	logging.LogCastResponse(target, result.StatusCode, len(data))
	logging.Debug("Cast completed",
		zap.String("endpoint", string(req.Endpoint)),
		zap.Bool("succeeded", result.Succeeded),
		zap.Duration("duration", result.Duration),
	)

	if req.Endpoint == EndpointPlay {
		c.debug(fmt.Sprintf("POST Response: %d - %s", result.StatusCode, result.Status))
		c.debug("Response content: " + result.Body)
	} else {
		c.debug(fmt.Sprintf("%s response: %d - %s", req.Endpoint.Title(), result.StatusCode, result.Status))
	}

	return result, nil
}

func (c *Client) failureLine(endpoint Endpoint, err *Error) string {
	if endpoint == EndpointPlay {
		return "Error in POST: " + err.Detail()
	}
	return endpoint.Title() + " failed: " + err.Detail()
}

// reasonPhrase strips the numeric code from resp.Status ("404 Not Found" -> "Not Found").
func reasonPhrase(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
