// Package events models the inbound side of a VK bot: the closed set of event
// kinds delivered to community bots and user accounts, the Event value that
// carries an update, and Classify, which maps an Event to its Kind.
//
// Community bot updates arrive as objects with a "type" member and map to a
// BotEventType. User longpoll updates arrive as positional arrays; they are
// turned into objects by NormalizeUserUpdate and map to an EventID.
package events
