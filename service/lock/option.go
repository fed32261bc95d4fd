package lock

// Option configures the lock set
type Option func(s *Set, checks *[kinds]func())

// WithInvariant attaches an invariant check to a lock. The check runs after
// acquire and before release when syncutil invariant checking is enabled.
func WithInvariant(kind Kind, check func()) Option {
	return func(s *Set, checks *[kinds]func()) {
		if kind >= 0 && kind < kinds {
			checks[kind] = check
		}
	}
}

// WithFatal sets the handler for lock primitive failures
func WithFatal(fn FatalFunc) Option {
	return func(s *Set, checks *[kinds]func()) {
		if fn != nil {
			s.fatal = fn
		}
	}
}
