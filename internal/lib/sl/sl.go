// Package sl contains small helpers for structured logging with log/slog.
package sl

import "log/slog"

// Err returns a slog.Attr with key "error" and the error text as value,
// so every handler and service logs failures in the same shape.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
