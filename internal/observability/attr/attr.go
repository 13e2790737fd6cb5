// Package attr provides slog attribute helpers shared by every module's
// service layer.
package attr

import (
	"context"
	"log/slog"
	"time"

	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context so log lines from
// nested operations can be stitched together.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// ExtractCorrelationID returns the correlation ID attribute for the context,
// or an empty attribute when none is set.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		return slog.String("correlation_id", id)
	}
	return slog.String("correlation_id", "")
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Duration(key string, value time.Duration) slog.Attr { return slog.Duration(key, value) }

func Time(key string, value time.Time) slog.Attr { return slog.Time(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func TournamentID(key string, id sharedtypes.TournamentID) slog.Attr {
	return slog.String(key, id.String())
}

func RunID(key string, id sharedtypes.RunID) slog.Attr {
	return slog.String(key, id.String())
}
