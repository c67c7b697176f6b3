package client

// Factory creates request contexts. API clients go through a Factory so that
// applications can substitute their own context setup.
type Factory interface {
	CreateContext(callback RequestCallback, method MethodName, params Params, exceptions ...error) *RequestContext
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(callback RequestCallback, method MethodName, params Params, exceptions ...error) *RequestContext

func (f FactoryFunc) CreateContext(callback RequestCallback, method MethodName, params Params, exceptions ...error) *RequestContext {
	return f(callback, method, params, exceptions...)
}

// DefaultFactory creates plain contexts with NewRequestContext.
type DefaultFactory struct{}

func (DefaultFactory) CreateContext(callback RequestCallback, method MethodName, params Params, exceptions ...error) *RequestContext {
	return NewRequestContext(callback, method, params, exceptions...)
}
