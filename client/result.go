package client

import (
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// ResultContext holds the outcome of a request. It is owned by exactly one
// RequestContext, which is the only writer of the state, the data and the exception.
//
// Branch on State before reading anything else: Data is meaningful only for
// Success, Exception and ExceptionData only for the exception outcomes.
type ResultContext struct {
	mu            sync.RWMutex
	state         ResultState
	data          gjson.Result
	exception     error
	exceptionData map[string]any
}

func (r *ResultContext) State() ResultState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Data is the value returned by the transport.
func (r *ResultContext) Data() gjson.Result {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Exception is the error captured while calling the transport.
func (r *ResultContext) Exception() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exception
}

// ExceptionData is whatever an exception handler attached while processing the exception.
func (r *ResultContext) ExceptionData() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.exceptionData
}

// SetExceptionData attaches free-form data to the captured exception.
func (r *ResultContext) SetExceptionData(data map[string]any) {
	r.mu.Lock()
	r.exceptionData = data
	r.mu.Unlock()
}

// Decode unmarshals the successful result into v.
func (r *ResultContext) Decode(v any) error {
	r.mu.RLock()
	state, raw := r.state, r.data.Raw
	r.mu.RUnlock()

	if state != Success {
		return fmt.Errorf("vkwave: can't decode result in state %s", state)
	}
	if raw == "" {
		return errors.New("vkwave: result has no data")
	}
	return json.Unmarshal([]byte(raw), v)
}

func (r *ResultContext) succeed(data gjson.Result) {
	r.mu.Lock()
	r.state = Success
	r.data = data
	r.mu.Unlock()
}

func (r *ResultContext) capture(err error) {
	r.mu.Lock()
	r.exception = err
	r.mu.Unlock()
}

func (r *ResultContext) classify(handled bool) {
	r.mu.Lock()
	if handled {
		r.state = HandledException
	} else {
		r.state = UnhandledException
	}
	r.mu.Unlock()
}
