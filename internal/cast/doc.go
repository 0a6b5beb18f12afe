// Package cast sends URLs and test requests to the PC-side receiver.
//
// The receiver exposes three POST endpoints on http://host:port:
//
//	/play       form body url=<percent-encoded URL>&device=<device name>
//	/test       empty body
//	/testVideo  empty body
//
// Every request carries Content-Type application/x-www-form-urlencoded and
// the X-Device-Name, X-Device-Model and X-Device-Android headers; /play also
// sends User-Agent CastToMPV/1.0. Connect and read are each bounded by 10s
// for /play and 5s for the test endpoints.
//
// # Outcomes
//
// Each request ends in exactly one of three states:
//
//   - succeeded: the receiver answered 200
//   - HTTP error: the receiver answered with another status
//     (Result.Succeeded is false, Result.Err returns an ErrTypeHTTP error)
//   - failed: validation or transport failure, returned as *Error
//
// There are no retries. A failed request is re-sent only when the user asks.
//
// # Usage Example
//
//	client := cast.NewClient(debugLog)
//	info := device.Resolve(cfg.DeviceName)
//
//	res, err := client.Send(ctx, cfg, cast.PlayRequest(url, info))
//	notice := cast.Describe(cast.PlayRequest(url, info), res, err)
//	fmt.Println(notice.Status)
//
// Dispatch runs the same call in the background and returns a Task that
// can be waited on or canceled.
package cast
