package observe

import (
	"context"
	"log/slog"

	"github.com/casualjim/vkwave/client"
	"github.com/casualjim/vkwave/pkg/slogx"
	"github.com/nats-io/nats.go"
)

// Publisher publishes a message on a subject. *nats.Conn implements it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

var _ Publisher = (*nats.Conn)(nil)

// NATS returns a callback that publishes the Record of a request on subject.
// Register it for client.AfterRequest. Publish failures are logged, they
// never affect the request.
func NATS(pub Publisher, subject string, includeData bool) client.SignalCallback {
	lg := slog.Default().With(slogx.LoggerName("vkwave.observe.nats"))
	return func(ctx context.Context, rc *client.RequestContext) {
		b, err := Encode(rc, includeData)
		if err != nil {
			lg.ErrorContext(ctx, "failed to encode request record", slogx.Error(err), slogx.RequestID(rc.ID()))
			return
		}
		if err := pub.Publish(subject, b); err != nil {
			lg.ErrorContext(ctx, "failed to publish request record", slogx.Error(err), slog.String("subject", subject))
		}
	}
}
