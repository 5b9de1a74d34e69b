package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Operation records the operation name under the key "op".
func Operation(name string) slog.Attr {
	return slog.String("op", name)
}

// AccountID records the account identifier under the key "account_id".
// If id is empty, it returns an empty Attr.
func AccountID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("account_id", id)
}

// Counter records a TOTP step counter under the key "counter".
func Counter(c int64) slog.Attr {
	return slog.Int64("counter", c)
}

// Attempts records a failed-attempt count under the key "attempts".
func Attempts(n int64) slog.Attr {
	return slog.Int64("attempts", n)
}
