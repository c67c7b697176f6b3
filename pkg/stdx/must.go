package stdx

// Must0 panics if err is not nil.
// Use it where an error can only come from a programming mistake,
// such as wiring a handler for something that was never declared.
func Must0(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 returns v, or panics when err is not nil.
func Must1[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
