package cast

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeValidation indicates host or port is missing (nothing was sent)
	ErrTypeValidation ErrorType = iota
	// ErrTypeNetwork indicates a network-level error not covered below
	ErrTypeNetwork
	// ErrTypeTimeout indicates the connect or read timeout expired
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the receiver refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates the receiver answered with a non-200 status
	ErrTypeHTTP
	// ErrTypeCanceled indicates the caller canceled the request
	ErrTypeCanceled
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// Error is returned by Send for every failure.
type Error struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (ErrTypeHTTP only)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Target         string              // host:port the request was for
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Detail returns the underlying message when there is one, else Message.
// This is the text shown to the user after "Error: ".
func (e *Error) Detail() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// ClassifyNetworkError analyzes an error and returns a more specific error type
func ClassifyNetworkError(err error, target string) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &Error{
			Type:    ErrTypeCanceled,
			Message: "Request canceled",
			Err:     err,
			Target:  target,
		}
	}

	if os.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return &Error{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Target:         target,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Target:         target,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &Error{
				Type:           ErrTypeConnectionRefused,
				Message:        "Receiver refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Target:         target,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &Error{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Target:         target,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &Error{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Target:         target,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		classified := ClassifyNetworkError(urlErr.Err, target)
		// keep the full url.Error text for the user
		classified.Err = err
		return classified
	}

	return &Error{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Target:         target,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, target string, err error) *Error {
	classified := ClassifyNetworkError(err, target)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &Error{
		Type:    ErrTypeNetwork,
		Message: message,
		Target:  target,
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(message string, target string, err error) *Error {
	return &Error{
		Type:           ErrTypeTimeout,
		Message:        message,
		Err:            err,
		NetworkSubtype: NetworkErrorTimeout,
		Target:         target,
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *Error {
	return &Error{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string, err error) *Error {
	return &Error{
		Type:    ErrTypeValidation,
		Message: message,
		Err:     err,
	}
}

func typeOf(err error) (ErrorType, bool) {
	var castErr *Error
	if errors.As(err, &castErr) {
		return castErr.Type, true
	}
	return 0, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS, etc.)
func IsNetworkError(err error) bool {
	t, ok := typeOf(err)
	return ok && (t == ErrTypeNetwork ||
		t == ErrTypeTimeout ||
		t == ErrTypeConnectionRefused ||
		t == ErrTypeDNS)
}

// IsTimeout checks if an error is a connect or read timeout
func IsTimeout(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeTimeout
}

// IsHTTPError checks if an error is an HTTP status error
func IsHTTPError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeHTTP
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeValidation
}

// IsCanceled checks if the caller canceled the request
func IsCanceled(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeCanceled
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	var castErr *Error
	if !errors.As(err, &castErr) {
		return "An unexpected error occurred. Please try again."
	}

	switch castErr.Type {
	case ErrTypeValidation:
		return "Set the receiver IP and port, then save."

	case ErrTypeTimeout:
		return strings.Join([]string{
			"The receiver did not respond in time.",
			"Troubleshooting:",
			"  • Check that the receiver is running on the PC",
			"  • Verify both devices are on the same network",
			"  • Check the PC firewall allows the receiver port",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The PC refused the connection.",
			"Troubleshooting:",
			"  • Start the receiver on the PC",
			"  • Verify the port number matches the receiver",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the receiver hostname.",
			"Troubleshooting:",
			"  • Use the PC's IP address instead of a hostname",
			"  • Try 'casttompv scan' to find receivers on the network",
		}, "\n")

	case ErrTypeNetwork:
		hint := []string{"Network communication failed."}

		switch castErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			hint = append(hint, "The PC is not reachable on the network.",
				"Troubleshooting:",
				"  • Verify the IP address is correct",
				"  • Check that both devices are on the same network")

		case NetworkErrorNetworkUnreachable:
			hint = append(hint, "This device cannot reach the PC's network.",
				"Troubleshooting:",
				"  • Check the WiFi connection")

		default:
			hint = append(hint, "Troubleshooting:",
				"  • Check your network connection",
				"  • Verify the receiver is running")
		}

		return strings.Join(hint, "\n")

	case ErrTypeHTTP:
		if castErr.StatusCode >= 500 {
			return fmt.Sprintf("The receiver failed to handle the request (HTTP %d). Check its log.", castErr.StatusCode)
		}
		return fmt.Sprintf("The receiver rejected the request (HTTP %d). Check that it supports this endpoint.", castErr.StatusCode)

	case ErrTypeCanceled:
		return "The request was canceled."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	var castErr *Error
	if !errors.As(err, &castErr) {
		return err.Error()
	}

	switch castErr.Type {
	case ErrTypeTimeout:
		return "Receiver not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Receiver refused connection - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve receiver hostname"
	case ErrTypeNetwork:
		switch castErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Receiver unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check WiFi connection"
		default:
			return "Network error - check connection"
		}
	case ErrTypeHTTP:
		return fmt.Sprintf("Receiver error (HTTP %d)", castErr.StatusCode)
	default:
		return castErr.Message
	}
}
