package dispatch

import (
	"context"
	"fmt"

	"github.com/casualjim/vkwave/events"
)

func ignoreNil(context.Context, any, *events.Event) error {
	return nil
}

func replyWithText(messenger Messenger) Caster {
	return func(ctx context.Context, value any, event *events.Event) error {
		if messenger == nil {
			return fmt.Errorf("vkwave: no messenger to reply with")
		}
		peerID, ok := event.PeerID()
		if !ok {
			return fmt.Errorf("vkwave: event has no peer to reply to")
		}
		return messenger.SendMessage(ctx, peerID, value.(string))
	}
}
