package events

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrUnknownEvent is returned when an event can't be mapped to a known Kind.
	ErrUnknownEvent = errors.New("vkwave: unknown event")
	// ErrInvalidEvent is returned for payloads that are not valid event JSON.
	ErrInvalidEvent = errors.New("vkwave: invalid event")
)

// BotType tells which kind of account received an event.
type BotType int

const (
	// Bot is a community account, events come from the callback API or bots longpoll.
	Bot BotType = iota
	// User is a user account, events come from the user longpoll.
	User
)

func (b BotType) String() string {
	switch b {
	case Bot:
		return "bot"
	case User:
		return "user"
	}
	return fmt.Sprintf("BotType(%d)", int(b))
}

// Event is an inbound occurrence as delivered to a bot.
//
// For Bot events Object is the update as sent by VK:
//
//	{"type":"message_new","object":{"message":{"peer_id":1,"text":"hi"}},"group_id":1}
//
// For User events Object is a normalized longpoll update, see NormalizeUserUpdate:
//
//	{"object":{"event_id":4,"message_id":10,"peer_id":1,"text":"hi"}}
type Event struct {
	BotType BotType
	Object  gjson.Result
}

// NewBotEvent parses a community bot update.
func NewBotEvent(raw []byte) (*Event, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidEvent)
	}
	obj := gjson.ParseBytes(raw)
	if !obj.IsObject() {
		return nil, fmt.Errorf("%w: update is not an object", ErrInvalidEvent)
	}
	return &Event{BotType: Bot, Object: obj}, nil
}

// NewUserEvent parses a normalized user longpoll update.
func NewUserEvent(raw []byte) (*Event, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidEvent)
	}
	obj := gjson.ParseBytes(raw)
	if !obj.Get("object").IsObject() {
		return nil, fmt.Errorf("%w: missing object", ErrInvalidEvent)
	}
	return &Event{BotType: User, Object: obj}, nil
}

// FromUserUpdate normalizes a raw user longpoll array and parses it.
func FromUserUpdate(raw []byte) (*Event, error) {
	normalized, err := NormalizeUserUpdate(raw)
	if err != nil {
		return nil, err
	}
	return NewUserEvent(normalized)
}

// PeerID returns the conversation the event originates from.
func (e *Event) PeerID() (int64, bool) {
	var peer gjson.Result
	if e.BotType == User {
		peer = e.Object.Get("object.peer_id")
	} else {
		peer = e.Object.Get("object.message.peer_id")
		if !peer.Exists() {
			// message_event and typing updates carry the peer at the top of the object
			peer = e.Object.Get("object.peer_id")
		}
	}
	if !peer.Exists() {
		return 0, false
	}
	return peer.Int(), true
}

// Text returns the text of a message event, if any.
func (e *Event) Text() string {
	if e.BotType == User {
		return e.Object.Get("object.text").String()
	}
	return e.Object.Get("object.message.text").String()
}

// Classify maps an event to its concrete Kind: the update type for bot
// events and the longpoll event code for user events.
func Classify(e *Event) (Kind, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil event", ErrUnknownEvent)
	}
	switch e.BotType {
	case Bot:
		typ := e.Object.Get("type").String()
		kind, ok := ParseBotEventType(typ)
		if !ok {
			return nil, fmt.Errorf("%w: bot event type %q", ErrUnknownEvent, typ)
		}
		return kind, nil
	case User:
		id := e.Object.Get("object.event_id")
		kind, ok := EventIDByID(id.Int())
		if !id.Exists() || !ok {
			return nil, fmt.Errorf("%w: user event id %s", ErrUnknownEvent, id.Raw)
		}
		return kind, nil
	}
	return nil, fmt.Errorf("%w: bot type %s", ErrUnknownEvent, e.BotType)
}
