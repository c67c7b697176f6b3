package events

import (
	"strconv"
)

// Kind identifies the type of an inbound event. Kinds are compared by Key.
type Kind interface {
	Key() string
}

// BotEventType is the type of an event delivered to a community bot
// through the callback API or bots longpoll.
type BotEventType string

const (
	BotMessageNew               BotEventType = "message_new"
	BotMessageReply             BotEventType = "message_reply"
	BotMessageEdit              BotEventType = "message_edit"
	BotMessageTypingState       BotEventType = "message_typing_state"
	BotMessageAllow             BotEventType = "message_allow"
	BotMessageDeny              BotEventType = "message_deny"
	BotMessageEvent             BotEventType = "message_event"
	BotPhotoNew                 BotEventType = "photo_new"
	BotPhotoCommentNew          BotEventType = "photo_comment_new"
	BotAudioNew                 BotEventType = "audio_new"
	BotVideoNew                 BotEventType = "video_new"
	BotVideoCommentNew          BotEventType = "video_comment_new"
	BotWallPostNew              BotEventType = "wall_post_new"
	BotWallRepost               BotEventType = "wall_repost"
	BotWallReplyNew             BotEventType = "wall_reply_new"
	BotWallReplyEdit            BotEventType = "wall_reply_edit"
	BotWallReplyDelete          BotEventType = "wall_reply_delete"
	BotLikeAdd                  BotEventType = "like_add"
	BotLikeRemove               BotEventType = "like_remove"
	BotBoardPostNew             BotEventType = "board_post_new"
	BotMarketCommentNew         BotEventType = "market_comment_new"
	BotMarketOrderNew           BotEventType = "market_order_new"
	BotGroupLeave               BotEventType = "group_leave"
	BotGroupJoin                BotEventType = "group_join"
	BotUserBlock                BotEventType = "user_block"
	BotUserUnblock              BotEventType = "user_unblock"
	BotPollVoteNew              BotEventType = "poll_vote_new"
	BotGroupOfficersEdit        BotEventType = "group_officers_edit"
	BotGroupChangeSettings      BotEventType = "group_change_settings"
	BotGroupChangePhoto         BotEventType = "group_change_photo"
	BotVKPayTransaction         BotEventType = "vkpay_transaction"
	BotAppPayload               BotEventType = "app_payload"
	BotDonutSubscriptionCreate  BotEventType = "donut_subscription_create"
	BotDonutSubscriptionExpired BotEventType = "donut_subscription_expired"
)

var botEventTypes = map[BotEventType]struct{}{
	BotMessageNew: {}, BotMessageReply: {}, BotMessageEdit: {}, BotMessageTypingState: {},
	BotMessageAllow: {}, BotMessageDeny: {}, BotMessageEvent: {},
	BotPhotoNew: {}, BotPhotoCommentNew: {}, BotAudioNew: {}, BotVideoNew: {}, BotVideoCommentNew: {},
	BotWallPostNew: {}, BotWallRepost: {}, BotWallReplyNew: {}, BotWallReplyEdit: {}, BotWallReplyDelete: {},
	BotLikeAdd: {}, BotLikeRemove: {}, BotBoardPostNew: {}, BotMarketCommentNew: {}, BotMarketOrderNew: {},
	BotGroupLeave: {}, BotGroupJoin: {}, BotUserBlock: {}, BotUserUnblock: {}, BotPollVoteNew: {},
	BotGroupOfficersEdit: {}, BotGroupChangeSettings: {}, BotGroupChangePhoto: {},
	BotVKPayTransaction: {}, BotAppPayload: {},
	BotDonutSubscriptionCreate: {}, BotDonutSubscriptionExpired: {},
}

func (t BotEventType) Key() string { return "bot:" + string(t) }

func (t BotEventType) String() string { return string(t) }

// ParseBotEventType returns the BotEventType named s, if it is a known one.
func ParseBotEventType(s string) (BotEventType, bool) {
	t := BotEventType(s)
	_, ok := botEventTypes[t]
	return t, ok
}

// EventID is the code of a user longpoll event.
type EventID int

const (
	UserMessageFlagsReplace   EventID = 1
	UserMessageFlagsSet       EventID = 2
	UserMessageFlagsReset     EventID = 3
	UserMessageNew            EventID = 4
	UserMessageEdit           EventID = 5
	UserReadIncoming          EventID = 6
	UserReadOutgoing          EventID = 7
	UserFriendOnline          EventID = 8
	UserFriendOffline         EventID = 9
	UserChatFlagsReset        EventID = 10
	UserChatFlagsReplace      EventID = 11
	UserChatFlagsSet          EventID = 12
	UserMessagesDelete        EventID = 13
	UserMessagesRestore       EventID = 14
	UserChatEdit              EventID = 51
	UserChatInfoEdit          EventID = 52
	UserTyping                EventID = 61
	UserChatTyping            EventID = 62
	UserChatUsersTyping       EventID = 63
	UserChatVoiceRecording    EventID = 64
	UserCall                  EventID = 70
	UserCounterUpdate         EventID = 80
	UserNotificationsSettings EventID = 114
)

var eventIDs = map[EventID]string{
	UserMessageFlagsReplace:   "message_flags_replace",
	UserMessageFlagsSet:       "message_flags_set",
	UserMessageFlagsReset:     "message_flags_reset",
	UserMessageNew:            "message_new",
	UserMessageEdit:           "message_edit",
	UserReadIncoming:          "read_incoming",
	UserReadOutgoing:          "read_outgoing",
	UserFriendOnline:          "friend_online",
	UserFriendOffline:         "friend_offline",
	UserChatFlagsReset:        "chat_flags_reset",
	UserChatFlagsReplace:      "chat_flags_replace",
	UserChatFlagsSet:          "chat_flags_set",
	UserMessagesDelete:        "messages_delete",
	UserMessagesRestore:       "messages_restore",
	UserChatEdit:              "chat_edit",
	UserChatInfoEdit:          "chat_info_edit",
	UserTyping:                "typing",
	UserChatTyping:            "chat_typing",
	UserChatUsersTyping:       "chat_users_typing",
	UserChatVoiceRecording:    "chat_voice_recording",
	UserCall:                  "call",
	UserCounterUpdate:         "counter_update",
	UserNotificationsSettings: "notifications_settings",
}

func (id EventID) Key() string { return "user:" + strconv.Itoa(int(id)) }

func (id EventID) String() string {
	if name, ok := eventIDs[id]; ok {
		return name
	}
	return "EventID(" + strconv.Itoa(int(id)) + ")"
}

// EventIDByID returns the EventID with code id, if it is a known one.
func EventIDByID(id int64) (EventID, bool) {
	e := EventID(id)
	_, ok := eventIDs[e]
	return e, ok
}
