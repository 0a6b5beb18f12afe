package cast

import (
	"net/url"
	"strings"
	"time"

	"github.com/magmaskv/casttompv/internal/device"
)

// Endpoint names a receiver endpoint.
type Endpoint string

const (
	// EndpointPlay asks the receiver to play a URL.
	EndpointPlay Endpoint = "play"
	// EndpointTest checks the connection.
	EndpointTest Endpoint = "test"
	// EndpointTestVideo asks the receiver to play its built-in sample.
	EndpointTestVideo Endpoint = "testVideo"
)

// Timeouts applied to both connect and read.
const (
	PlayTimeout = 10 * time.Second
	TestTimeout = 5 * time.Second
)

// UserAgent is sent on /play requests only.
const UserAgent = "CastToMPV/1.0"

// Header names sent with every request.
const (
	HeaderDeviceName  = "X-Device-Name"
	HeaderDeviceModel = "X-Device-Model"
	HeaderOSVersion   = "X-Device-Android"
)

// Valid reports whether e is one of the three known endpoints.
func (e Endpoint) Valid() bool {
	switch e {
	case EndpointPlay, EndpointTest, EndpointTestVideo:
		return true
	}
	return false
}

// Timeout returns the default connect/read timeout for e.
func (e Endpoint) Timeout() time.Duration {
	if e == EndpointPlay {
		return PlayTimeout
	}
	return TestTimeout
}

// Title returns the endpoint name with its first letter upper-cased,
// as shown in status messages ("Test", "TestVideo").
func (e Endpoint) Title() string {
	s := string(e)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Request is one outgoing call. It is built per call and never persisted.
type Request struct {
	Endpoint Endpoint
	URL      string // payload for EndpointPlay
	device.Info

	// Timeout overrides Endpoint.Timeout() when non-zero.
	Timeout time.Duration
}

// PlayRequest builds a /play request for videoURL.
func PlayRequest(videoURL string, info device.Info) *Request {
	return &Request{Endpoint: EndpointPlay, URL: videoURL, Info: info}
}

// TestRequest builds a /test request.
func TestRequest(info device.Info) *Request {
	return &Request{Endpoint: EndpointTest, Info: info}
}

// TestVideoRequest builds a /testVideo request.
func TestVideoRequest(info device.Info) *Request {
	return &Request{Endpoint: EndpointTestVideo, Info: info}
}

func (r *Request) timeout() time.Duration {
	if r.Timeout > 0 {
		return r.Timeout
	}
	return r.Endpoint.Timeout()
}

// Body returns the form body. Test endpoints send nothing.
//
// The device name is written without percent-encoding. Receivers in the
// field parse this exact layout, so a name containing '&', '=', '+' or '%'
// reaches them altered.
func (r *Request) Body() string {
	if r.Endpoint != EndpointPlay {
		return ""
	}
	return "url=" + url.QueryEscape(r.URL) + "&device=" + r.Name
}

// Headers returns the request headers for r.
func (r *Request) Headers() map[string]string {
	h := map[string]string{
		"Content-Type":    "application/x-www-form-urlencoded",
		HeaderDeviceName:  r.Name,
		HeaderDeviceModel: r.Model,
		HeaderOSVersion:   r.OSVersion,
	}
	if r.Endpoint == EndpointPlay {
		h["User-Agent"] = UserAgent
	}
	return h
}

// Result is the receiver's answer to one request.
type Result struct {
	Endpoint   Endpoint
	StatusCode int
	Status     string // reason phrase, e.g. "OK"
	Body       string
	Succeeded  bool // StatusCode == 200
	Duration   time.Duration
	DeviceName string
}

// Err returns nil for a 200 answer and an ErrTypeHTTP error otherwise.
func (r *Result) Err() error {
	if r.Succeeded {
		return nil
	}
	return NewHTTPError(r.StatusCode, strings.TrimSpace(r.Endpoint.Title()+" error: "+r.Status))
}
