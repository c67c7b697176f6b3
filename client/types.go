package client

import (
	"context"

	"github.com/tidwall/gjson"
)

// MethodName is the name of a remote API method, e.g. "messages.send".
type MethodName string

// Params holds the parameters of a request. The core treats them as opaque,
// transports decide how to encode them.
type Params map[string]any

// RequestCallback performs the actual call for a request context.
// Every error kind it can return must be declared when the context is created
// for exception handlers to be installable for it.
type RequestCallback func(ctx context.Context, method MethodName, params Params) (gjson.Result, error)

// SignalCallback is invoked when a signal fires.
type SignalCallback func(ctx context.Context, rc *RequestContext)

// ErrorHandler processes a captured transport error. It can inspect
// rc.Result().Exception() and attach data with rc.Result().SetExceptionData.
type ErrorHandler func(ctx context.Context, rc *RequestContext)
