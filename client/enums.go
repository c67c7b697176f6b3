package client

import "fmt"

// RequestState tells whether a request context has been sent.
type RequestState int

const (
	NotSent RequestState = iota
	Sent
)

func (s RequestState) String() string {
	switch s {
	case NotSent:
		return "NOT_SENT"
	case Sent:
		return "SENT"
	}
	return fmt.Sprintf("RequestState(%d)", int(s))
}

// ResultState is the outcome of a request.
// Check it before reading any other field of a ResultContext.
type ResultState int

const (
	Nothing ResultState = iota
	Success
	HandledException
	UnhandledException
)

func (s ResultState) String() string {
	switch s {
	case Nothing:
		return "NOTHING"
	case Success:
		return "SUCCESS"
	case HandledException:
		return "HANDLED_EXCEPTION"
	case UnhandledException:
		return "UNHANDLED_EXCEPTION"
	}
	return fmt.Sprintf("ResultState(%d)", int(s))
}

// IsException reports whether s is one of the exception outcomes.
func (s ResultState) IsException() bool {
	return s == HandledException || s == UnhandledException
}

// Signal names an extension point in the request lifecycle.
type Signal int

const (
	// BeforeRequest fires while preparing to call the transport.
	BeforeRequest Signal = iota
	// OnException fires after a transport error was captured and exception handlers ran.
	OnException
	// AfterRequest fires last, whatever the outcome.
	AfterRequest
)

func (s Signal) String() string {
	switch s {
	case BeforeRequest:
		return "BEFORE_REQUEST"
	case OnException:
		return "ON_EXCEPTION"
	case AfterRequest:
		return "AFTER_REQUEST"
	}
	return fmt.Sprintf("Signal(%d)", int(s))
}

func (s Signal) valid() bool {
	return s >= BeforeRequest && s <= AfterRequest
}
