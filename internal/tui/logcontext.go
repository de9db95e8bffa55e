package tui

// InLogContext brackets fn with a start message and a completion message
func (s *Splog) InLogContext(start, done string, fn func()) {
	s.Info(start)
	fn()
	s.Info(done)
}

// InLogContextValue is InLogContext for functions that return a value
func InLogContextValue[T any](s *Splog, start, done string, fn func() T) T {
	s.Info(start)
	v := fn()
	s.Info(done)
	return v
}

// InSuccessFailureLogContext brackets fn with a start message and either the
// success or the failure message, depending on what fn reports
func (s *Splog) InSuccessFailureLogContext(start, success, failure string, fn func() bool) bool {
	s.Info(start)
	ok := fn()
	if ok {
		s.Info(success)
	} else {
		s.Warn(failure)
	}
	return ok
}
