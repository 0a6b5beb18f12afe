package cast

import (
	"errors"
	"fmt"
)

// Notice is what the shell shows for a finished request: a status line and
// a short transient message.
type Notice struct {
	Status  string
	Toast   string
	Success bool
}

// Pending returns the status line shown while a request for e is in flight.
func Pending(e Endpoint) string {
	switch e {
	case EndpointPlay:
		return "📡 Sending video..."
	case EndpointTest:
		return "🔄 Testing detailed connection..."
	case EndpointTestVideo:
		return "🎬 Testing video playback..."
	default:
		return "Sending..."
	}
}

// Describe turns the outcome of Send into user-facing text.
// A validation error leaves Status empty for the test endpoints, meaning
// the current status line stays as it is.
func Describe(req *Request, res *Result, err error) Notice {
	endpoint := EndpointPlay
	if req != nil {
		endpoint = req.Endpoint
	}
	title := endpoint.Title()

	if err != nil {
		var castErr *Error
		if errors.As(err, &castErr) && castErr.Type == ErrTypeValidation {
			n := Notice{Toast: castErr.Message}
			if endpoint == EndpointPlay {
				n.Status = "❌ Configure first"
			}
			return n
		}

		detail := err.Error()
		if castErr != nil {
			detail = castErr.Detail()
		}
		if endpoint == EndpointPlay {
			msg := "❌ Error: " + detail
			return Notice{Status: msg, Toast: msg}
		}
		msg := fmt.Sprintf("❌ %s failed: %s", title, detail)
		return Notice{Status: msg, Toast: msg}
	}

	if res == nil {
		return Notice{}
	}

	if endpoint == EndpointPlay {
		if res.Succeeded {
			return Notice{
				Status:  fmt.Sprintf("✅ Video sent from %s!", res.DeviceName),
				Toast:   "✅ Video sent to PC",
				Success: true,
			}
		}
		msg := fmt.Sprintf("❌ Error: %d", res.StatusCode)
		return Notice{Status: msg, Toast: msg}
	}

	if res.Succeeded {
		return Notice{
			Status:  fmt.Sprintf("✅ %s completed!\nDevice: %s", title, res.DeviceName),
			Toast:   fmt.Sprintf("✅ %s successful", title),
			Success: true,
		}
	}
	return Notice{
		Status: fmt.Sprintf("⚠️ %s error: %d", title, res.StatusCode),
		Toast:  fmt.Sprintf("%s error: %d", title, res.StatusCode),
	}
}
