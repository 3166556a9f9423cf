package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/maxviazov/bookstore-service/internal/logger"
)

// pgxLogger routes pgx tracelog output into zerolog under component=pgx and
// ties each query to the HTTP request that issued it.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(l zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: l.With().Str("component", "pgx").Logger()}
}

// Log implements tracelog.Logger. The well-known tracelog keys get typed
// fields; the statement text is only emitted at trace level, collapsed to one line.
func (l *pgxLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	event := l.event(level)
	if id := logger.RequestID(ctx); id != "" {
		event = event.Str("request_id", id)
	}

	rest := make(map[string]any, len(data))
	for k, v := range data {
		switch k {
		case "sql":
			if level == tracelog.LogLevelTrace {
				event = event.Str("sql", compactSQL(v))
			}
		case "args":
			if level == tracelog.LogLevelTrace {
				event = event.Interface("args", v)
			}
		case "time":
			if d, ok := v.(time.Duration); ok {
				event = event.Dur("took", d)
				continue
			}
			rest[k] = v
		case "err":
			if err, ok := v.(error); ok {
				event = event.Err(err)
				continue
			}
			rest[k] = v
		default:
			rest[k] = v
		}
	}
	if len(rest) > 0 {
		event = event.Fields(rest)
	}
	event.Msg(msg)
}

func (l *pgxLogger) event(level tracelog.LogLevel) *zerolog.Event {
	switch level {
	case tracelog.LogLevelTrace:
		return l.logger.Trace()
	case tracelog.LogLevelDebug:
		return l.logger.Debug()
	case tracelog.LogLevelInfo:
		return l.logger.Info()
	case tracelog.LogLevelWarn:
		return l.logger.Warn()
	case tracelog.LogLevelError:
		return l.logger.Error()
	default:
		return l.logger.Info().Str("pgx_log_level", level.String())
	}
}

// compactSQL folds the multi-line statements used by the stores into a single line.
func compactSQL(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}
