package client

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/casualjim/vkwave/pkg/stdx"
	"github.com/casualjim/vkwave/pkg/uuidx"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type exceptionHandler struct {
	handle    ErrorHandler
	installed bool
}

// RequestContext supervises a single call of a remote method.
//
// A context is created in the NotSent state with the set of error kinds its
// transport may return. Callers hook signals and install exception handlers,
// then call SendRequest once. Transport failures never escape SendRequest:
// they are recorded in the Result, classified as handled or unhandled.
type RequestContext struct {
	id       string
	method   MethodName
	params   Params
	callback RequestCallback
	result   *ResultContext

	mu       sync.Mutex
	state    RequestState
	signals  map[Signal][]SignalCallback
	handlers *orderedmap.OrderedMap[error, exceptionHandler]
}

// NewRequestContext creates a context that calls callback with method and params.
//
// exceptions lists the error kinds the callback may return, as sentinel errors.
// A captured error belongs to the first declared kind it matches with errors.Is.
// It panics when a kind is nil or not comparable.
func NewRequestContext(callback RequestCallback, method MethodName, params Params, exceptions ...error) *RequestContext {
	if callback == nil {
		panic("vkwave: request callback is required")
	}
	rc := &RequestContext{
		id:       uuidx.NewString(),
		method:   method,
		params:   params,
		callback: callback,
		result:   &ResultContext{},
		state:    NotSent,
		signals: map[Signal][]SignalCallback{
			BeforeRequest: nil,
			OnException:   nil,
			AfterRequest:  nil,
		},
		handlers: orderedmap.New[error, exceptionHandler](),
	}
	for _, kind := range exceptions {
		if kind == nil {
			panic("vkwave: exception kind can't be nil")
		}
		if !reflect.TypeOf(kind).Comparable() {
			panic(fmt.Sprintf("vkwave: exception kind %T is not comparable", kind))
		}
		rc.handlers.Set(kind, exceptionHandler{})
	}
	return rc
}

// ID uniquely identifies this context, mostly for log correlation.
func (rc *RequestContext) ID() string { return rc.id }

func (rc *RequestContext) MethodName() MethodName { return rc.method }

func (rc *RequestContext) Params() Params { return rc.params }

func (rc *RequestContext) Result() *ResultContext { return rc.result }

func (rc *RequestContext) State() RequestState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.state
}

// Signal registers callback for sig. Callbacks of one signal run in
// registration order and can't be removed.
func (rc *RequestContext) Signal(sig Signal, callback SignalCallback) {
	if !sig.valid() {
		panic(fmt.Sprintf("vkwave: unknown signal %s", sig))
	}
	if callback == nil {
		panic("vkwave: signal callback is required")
	}
	rc.mu.Lock()
	rc.signals[sig] = append(rc.signals[sig], callback)
	rc.mu.Unlock()
}

// SetExceptionHandler installs handler for a declared exception kind, replacing
// any previous one. Kinds that were not declared at construction are rejected
// with ErrUnallowedException and the handler table is left untouched.
func (rc *RequestContext) SetExceptionHandler(kind error, handler ErrorHandler) error {
	if handler == nil {
		return ErrNilHandler
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if kind == nil || !reflect.TypeOf(kind).Comparable() {
		return fmt.Errorf("%w: %v", ErrUnallowedException, kind)
	}
	if _, declared := rc.handlers.Get(kind); !declared {
		return fmt.Errorf("%w: %v", ErrUnallowedException, kind)
	}
	rc.handlers.Set(kind, exceptionHandler{handle: handler, installed: true})
	return nil
}

// MustSetExceptionHandler is SetExceptionHandler that panics on error.
func (rc *RequestContext) MustSetExceptionHandler(kind error, handler ErrorHandler) {
	stdx.Must0(rc.SetExceptionHandler(kind, handler))
}

// SendRequest runs the lifecycle of the request:
//
//  1. BeforeRequest callbacks, one after the other
//  2. the transport call
//  3. on success the result becomes Success with the returned data
//  4. on failure the error is recorded, the installed handler for its kind runs
//     (HandledException) or none does (UnhandledException), then OnException callbacks run
//  5. the request state becomes Sent
//  6. AfterRequest callbacks, whatever the outcome
//
// It is meant to be called once per context.
func (rc *RequestContext) SendRequest(ctx context.Context) {
	rc.pushSignal(ctx, BeforeRequest)

	data, err := rc.callback(ctx, rc.method, rc.params)
	if err == nil {
		rc.result.succeed(data)
	} else {
		rc.result.capture(err)
		rc.result.classify(rc.handleException(ctx, err))
		rc.pushSignal(ctx, OnException)
	}

	rc.mu.Lock()
	rc.state = Sent
	rc.mu.Unlock()

	rc.pushSignal(ctx, AfterRequest)
}

func (rc *RequestContext) handleException(ctx context.Context, err error) bool {
	handler, ok := rc.lookupHandler(err)
	if !ok {
		return false
	}
	handler(ctx, rc)
	return true
}

// lookupHandler finds the first declared kind err matches and returns its
// handler when one was installed.
func (rc *RequestContext) lookupHandler(err error) (ErrorHandler, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for pair := rc.handlers.Oldest(); pair != nil; pair = pair.Next() {
		if !errors.Is(err, pair.Key) {
			continue
		}
		if !pair.Value.installed {
			return nil, false
		}
		return pair.Value.handle, true
	}
	return nil, false
}

func (rc *RequestContext) pushSignal(ctx context.Context, sig Signal) {
	rc.mu.Lock()
	callbacks := slices.Clone(rc.signals[sig])
	rc.mu.Unlock()

	for _, callback := range callbacks {
		callback(ctx, rc)
	}
}
