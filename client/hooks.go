package client

import (
	"context"
	"log/slog"

	"github.com/casualjim/vkwave/pkg/slogx"
)

func logger() *slog.Logger {
	return slog.Default().With(slogx.LoggerName("vkwave.client"))
}

// LogBeforeRequest logs the method and params of a request about to be sent.
func LogBeforeRequest(ctx context.Context, rc *RequestContext) {
	logger().DebugContext(ctx, "doing request",
		slogx.RequestID(rc.ID()),
		slogx.Method(rc.MethodName()),
		slogx.JSON("params", redact(rc.Params())),
	)
}

// LogAfterRequest logs the outcome of a sent request.
// Unhandled exceptions are logged as errors, handled ones as warnings.
func LogAfterRequest(ctx context.Context, rc *RequestContext) {
	res := rc.Result()
	attrs := []any{
		slogx.RequestID(rc.ID()),
		slogx.Method(rc.MethodName()),
		slogx.Stringer("result", res.State()),
	}
	lg := logger()
	switch res.State() {
	case UnhandledException:
		lg.ErrorContext(ctx, "request failed", append(attrs, slogx.Error(res.Exception()))...)
	case HandledException:
		lg.WarnContext(ctx, "request failed, exception handled", append(attrs, slogx.Error(res.Exception()))...)
	default:
		lg.DebugContext(ctx, "request done", attrs...)
	}
}

// Chain combines callbacks into one that runs them in order.
func Chain(callbacks ...SignalCallback) SignalCallback {
	return func(ctx context.Context, rc *RequestContext) {
		for _, cb := range callbacks {
			cb(ctx, rc)
		}
	}
}

var secretParams = []string{"access_token", "client_secret"}

func redact(params Params) Params {
	var out Params
	for _, key := range secretParams {
		if _, ok := params[key]; !ok {
			continue
		}
		if out == nil {
			out = make(Params, len(params))
			for k, v := range params {
				out[k] = v
			}
		}
		out[key] = "***"
	}
	if out == nil {
		return params
	}
	return out
}
