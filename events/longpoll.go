package events

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// chatPeerOffset turns a chat id into a peer id.
const chatPeerOffset = 2000000000

var userUpdateFields = map[EventID][]string{
	UserMessageFlagsReplace:   {"message_id", "flags", "peer_id"},
	UserMessageFlagsSet:       {"message_id", "flags", "peer_id"},
	UserMessageFlagsReset:     {"message_id", "flags", "peer_id"},
	UserMessageNew:            {"message_id", "flags", "peer_id", "timestamp", "text", "extra", "attachments", "random_id"},
	UserMessageEdit:           {"message_id", "flags", "peer_id", "timestamp", "text", "extra", "attachments"},
	UserReadIncoming:          {"peer_id", "local_id"},
	UserReadOutgoing:          {"peer_id", "local_id"},
	UserFriendOnline:          {"user_id", "extra", "timestamp"},
	UserFriendOffline:         {"user_id", "flags", "timestamp"},
	UserChatFlagsReset:        {"peer_id", "flags"},
	UserChatFlagsReplace:      {"peer_id", "flags"},
	UserChatFlagsSet:          {"peer_id", "flags"},
	UserMessagesDelete:        {"peer_id", "local_id"},
	UserMessagesRestore:       {"peer_id", "local_id"},
	UserChatEdit:              {"chat_id", "self"},
	UserChatInfoEdit:          {"type_id", "peer_id", "info"},
	UserTyping:                {"user_id", "flags"},
	UserChatTyping:            {"user_id", "chat_id"},
	UserChatUsersTyping:       {"user_ids", "peer_id", "total_count", "ts"},
	UserChatVoiceRecording:    {"user_ids", "peer_id", "total_count", "ts"},
	UserCall:                  {"user_id", "call_id"},
	UserCounterUpdate:         {"count"},
	UserNotificationsSettings: {"settings"},
}

// NormalizeUserUpdate converts a user longpoll update, which VK sends as a
// positional array such as
//
//	[4, 10, 1, 2000000001, 1700000000, "hi", {}, {}]
//
// into a named object:
//
//	{"object":{"event_id":4,"message_id":10,"flags":1,"peer_id":2000000001,...}}
//
// Positions without a known name are dropped. For typing events the peer_id
// is derived from the user or chat id.
func NormalizeUserUpdate(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidEvent)
	}
	update := gjson.ParseBytes(raw)
	if !update.IsArray() {
		return nil, fmt.Errorf("%w: user update is not an array", ErrInvalidEvent)
	}
	items := update.Array()
	if len(items) == 0 || items[0].Type != gjson.Number {
		return nil, fmt.Errorf("%w: user update has no event id", ErrInvalidEvent)
	}

	id := EventID(items[0].Int())
	out, err := sjson.SetBytes([]byte(`{"object":{}}`), "object.event_id", int(id))
	if err != nil {
		return nil, err
	}

	names := userUpdateFields[id]
	for i, item := range items[1:] {
		if i >= len(names) {
			break
		}
		out, err = sjson.SetRawBytes(out, "object."+names[i], []byte(item.Raw))
		if err != nil {
			return nil, err
		}
	}

	obj := gjson.GetBytes(out, "object")
	if !obj.Get("peer_id").Exists() {
		switch id {
		case UserTyping:
			out, err = sjson.SetBytes(out, "object.peer_id", obj.Get("user_id").Int())
		case UserChatTyping:
			out, err = sjson.SetBytes(out, "object.peer_id", chatPeerOffset+obj.Get("chat_id").Int())
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
