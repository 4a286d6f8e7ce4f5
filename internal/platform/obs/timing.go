package obs

import (
	"context"
	"group-trip-planner/internal/platform/logger"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores the request id used to correlate timing lines.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(RequestIDKey).(string)
	return reqID
}

// Time logs the duration of an operation. Use with a named error return:
//
//	defer obs.Time(ctx, log, "places.FetchActivities")(&err)
func Time(ctx context.Context, log *logger.Logger, name string) func(errp *error) {
	start := time.Now()
	log = logger.OrNop(log)
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Warn("op failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		log.Debug("op done", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
