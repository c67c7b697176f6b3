package dispatch

import (
	"context"
	"fmt"

	"github.com/casualjim/vkwave/client"
)

// Messenger sends a text message to a conversation.
type Messenger interface {
	SendMessage(ctx context.Context, peerID int64, text string) error
}

// MessengerFunc adapts a function to the Messenger interface.
type MessengerFunc func(ctx context.Context, peerID int64, text string) error

func (f MessengerFunc) SendMessage(ctx context.Context, peerID int64, text string) error {
	return f(ctx, peerID, text)
}

// APIMessenger sends messages with the messages.send method.
type APIMessenger struct {
	API client.APIClient
}

func (m APIMessenger) SendMessage(ctx context.Context, peerID int64, text string) error {
	rc := m.API.CreateRequest("messages.send", client.Params{
		"random_id": 0,
		"peer_id":   peerID,
		"message":   text,
	})
	rc.SendRequest(ctx)

	res := rc.Result()
	switch res.State() {
	case client.Success:
		return nil
	case client.HandledException:
		// the installed handler took care of it
		return nil
	case client.UnhandledException:
		return fmt.Errorf("vkwave: send message to %d: %w", peerID, res.Exception())
	}
	return fmt.Errorf("vkwave: send message to %d: request ended in state %s", peerID, res.State())
}
