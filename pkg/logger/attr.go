package logger

import (
	"log/slog"
	"time"
)

// Error logs err under "error". A nil error yields an empty attribute, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

func Component(name string) slog.Attr { return slog.String("component", name) }

// RequestID logs id under "request_id". An empty id yields an empty attribute.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Duration(d time.Duration) slog.Attr { return slog.Duration("duration", d) }

// Candidates logs the size of a candidate set.
func Candidates(n int) slog.Attr { return slog.Int("candidates", n) }

// Name logs a drawn name as text.
func Name(text string) slog.Attr { return slog.String("name", text) }

// Filters groups non-empty filter values under "filters". Values are
// logged as given, before validation.
func Filters(letters, origins []string, kind, gender string) slog.Attr {
	attrs := make([]slog.Attr, 0, 4)
	if len(letters) > 0 {
		attrs = append(attrs, slog.Any("letters", letters))
	}
	if len(origins) > 0 {
		attrs = append(attrs, slog.Any("origins", origins))
	}
	if kind != "" {
		attrs = append(attrs, slog.String("kind", kind))
	}
	if gender != "" {
		attrs = append(attrs, slog.String("gender", gender))
	}
	if len(attrs) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "filters", Value: slog.GroupValue(attrs...)}
}
