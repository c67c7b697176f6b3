// Package dispatch routes the values returned by event handlers.
//
// A ResultCaster keeps a table of casters keyed by (event kind, value type).
// After a handler processed an event, its return value is passed to Cast,
// which looks up the caster for (AnyEvent, type of value) and, when there is
// none, for (kind of the event, type of value). Values nobody registered for
// are dropped.
//
// A new ResultCaster already knows what to do with the two most common
// results: a string returned for a new message is sent back to the
// conversation, and nil is accepted for any event.
//
//	rc := dispatch.NewResultCaster(dispatch.APIMessenger{API: api})
//	dispatch.Register(rc, func(ctx context.Context, kb Keyboard, e *events.Event) error {
//	    ...
//	}, events.BotMessageNew)
//
//	if err := rc.Cast(ctx, handlerResult, event); err != nil {
//	    ...
//	}
package dispatch
