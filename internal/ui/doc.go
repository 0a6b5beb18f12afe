// Package ui provides the terminal front end of casttompv.
//
// It has two parts:
//
//   - Model: the interactive shell, a Bubble Tea program with the receiver
//     host and port fields, a URL field, the Debug/Save/Test/Test video/Cast
//     buttons, a status line, transient toasts, and the debug panel.
//   - Printer: one-shot styled output for the non-interactive commands,
//     with header, success and failure boxes.
//
// # Shell behavior
//
// Network calls never block the update loop. A button dispatches a
// cast.Task and returns a command that waits for it; the outcome arrives
// as a message and is applied on the loop, so status and toast changes
// have a single writer. Overlapping calls are allowed and each one
// reports its own outcome.
//
// Buttons act on the host and port as typed. Save persists them together
// with the debug flag; toggling debug saves immediately.
//
// # Logging Integration
//
// This package expects logging to be controlled via the CASTTOMPV_LOG_LEVEL
// environment variable. When unset or empty, zap logging is silent, allowing
// the shell to own the terminal. Set CASTTOMPV_LOG_LEVEL to "debug", "info",
// "warn", or "error" to enable logging output on stderr.
package ui
