// Package logging provides structured logging for casttompv.
//
// This package wraps a zap logger with convenience functions for the few
// logging patterns the sender and the reference receiver need.
//
// # Log Levels
//
//   - Debug: mirrored in-app debug log lines, request details
//   - Info: cast requests and responses, receiver activity
//   - Warn: non-fatal issues (player failed to start, advertisement failed)
//   - Error: startup failures
//
// # Silent By Default
//
// Nothing is written until Initialize is called with a level or the
// CASTTOMPV_LOG_LEVEL environment variable is set. The shell and the CLI
// print their own status text; zap output goes to stderr so it never mixes
// with command output.
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// # Debug Log Mirror
//
// The in-app debug log (package debuglog) mirrors every accepted line through
// LogDebugLine, tagged "CastToMPV". This is the system log sink.
package logging
