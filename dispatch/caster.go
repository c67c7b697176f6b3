package dispatch

import (
	"context"
	"fmt"
	"reflect"

	"github.com/casualjim/vkwave/events"
	"github.com/casualjim/vkwave/internal/registry"
	"github.com/casualjim/vkwave/pkg/reflectx"
	"github.com/fogfish/opts"
)

// Caster decides what to do with a value produced while handling event.
type Caster func(ctx context.Context, value any, event *events.Event) error

// Classifier maps an event to its concrete kind.
type Classifier func(event *events.Event) (events.Kind, error)

type anyEvent struct{}

func (anyEvent) Key() string { return "*" }

func (anyEvent) String() string { return "ANY" }

// AnyEvent is the wildcard event kind. A caster registered under it applies
// to every event and is looked up before any concrete kind.
var AnyEvent events.Kind = anyEvent{}

// NilType is the value type of an untyped nil, the "no value produced" case.
var NilType reflect.Type

// BaseResultCaster is implemented by anything that can route a handler result.
type BaseResultCaster interface {
	Cast(ctx context.Context, value any, event *events.Event) error
}

var _ BaseResultCaster = (*ResultCaster)(nil)

// ResultCaster routes values returned by event handlers to the caster registered
// for the pair (event kind, runtime value type).
//
// Resolution is a two step lookup: first (AnyEvent, type), then the event is
// classified and (kind, type) is looked up. A value with no matching caster is
// silently ignored.
type ResultCaster struct {
	casters    registry.Registry[string, registry.Registry[uintptr, typedCaster]]
	classifier Classifier
	messenger  Messenger
}

// WithClassifier replaces events.Classify as the way to derive an event's kind.
func WithClassifier(classifier Classifier) opts.Option[ResultCaster] {
	return opts.Type[ResultCaster](func(rc *ResultCaster) error {
		if classifier == nil {
			return fmt.Errorf("vkwave: classifier is required")
		}
		rc.classifier = classifier
		return nil
	})
}

// NewResultCaster creates a ResultCaster with the default casters installed:
// strings returned for new messages are sent back to the conversation through
// messenger, and nil values are accepted for any event without doing anything.
// It panics when an option fails.
func NewResultCaster(messenger Messenger, options ...opts.Option[ResultCaster]) *ResultCaster {
	rc := &ResultCaster{
		casters:    registry.New[string, registry.Registry[uintptr, typedCaster]](),
		classifier: events.Classify,
		messenger:  messenger,
	}
	if err := opts.Apply(rc, options); err != nil {
		panic(err)
	}

	rc.AddCaster(reflect.TypeFor[string](), replyWithText(messenger), events.BotMessageNew, events.UserMessageNew)
	rc.AddCaster(NilType, ignoreNil, AnyEvent)
	return rc
}

// AddCaster registers caster for valueType under every given kind, replacing
// previous registrations of the same pairs.
func (rc *ResultCaster) AddCaster(valueType reflect.Type, caster Caster, kinds ...events.Kind) {
	if caster == nil {
		panic("vkwave: caster is required")
	}
	for _, kind := range kinds {
		table := rc.casters.GetOrAdd(kind.Key(), registry.New[uintptr, typedCaster])
		table.Add(reflectx.TypeID(valueType), typedCaster{typ: valueType, cast: caster})
	}
}

// RemoveCaster removes the casters of valueType under the given kinds.
// Pairs that are not registered are ignored.
func (rc *ResultCaster) RemoveCaster(valueType reflect.Type, kinds ...events.Kind) {
	for _, kind := range kinds {
		if table, ok := rc.casters.Get(kind.Key()); ok {
			table.Del(reflectx.TypeID(valueType))
		}
	}
}

// Cast finds the caster for value and event and invokes it.
// A missing caster is not an error, failing classifiers and casters are.
func (rc *ResultCaster) Cast(ctx context.Context, value any, event *events.Event) error {
	valueType := reflect.TypeOf(value)

	caster, ok := rc.lookup(AnyEvent, valueType)
	if !ok {
		kind, err := rc.classifier(event)
		if err != nil {
			return fmt.Errorf("vkwave: classify event: %w", err)
		}
		caster, ok = rc.lookup(kind, valueType)
	}
	if !ok {
		return nil
	}
	return caster(ctx, value, event)
}

// Register adds a typed caster for values of type T.
func Register[T any](rc *ResultCaster, caster func(ctx context.Context, value T, event *events.Event) error, kinds ...events.Kind) {
	rc.AddCaster(reflect.TypeFor[T](), func(ctx context.Context, value any, event *events.Event) error {
		return caster(ctx, value.(T), event)
	}, kinds...)
}

// Unregister removes the casters of values of type T.
func Unregister[T any](rc *ResultCaster, kinds ...events.Kind) {
	rc.RemoveCaster(reflect.TypeFor[T](), kinds...)
}

type typedCaster struct {
	typ  reflect.Type
	cast Caster
}

func (rc *ResultCaster) lookup(kind events.Kind, valueType reflect.Type) (Caster, bool) {
	table, ok := rc.casters.Get(kind.Key())
	if !ok {
		return nil, false
	}
	entry, ok := table.Get(reflectx.TypeID(valueType))
	if !ok || entry.typ != valueType {
		return nil, false
	}
	return entry.cast, true
}
