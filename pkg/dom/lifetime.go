package dom

// Lifetime is a revocable capability. Listeners registered under it stay
// bound until Invalidate is called.
type Lifetime struct {
	invalidated bool
	cleanups    []func()
}

// NewLifetime returns a fresh, valid lifetime.
func NewLifetime() *Lifetime {
	return &Lifetime{}
}

// Invalidated reports whether Invalidate has been called.
func (l *Lifetime) Invalidated() bool {
	return l == nil || l.invalidated
}

// OnInvalidate registers fn to run when the lifetime is invalidated. If the
// lifetime is already invalid, fn runs immediately.
func (l *Lifetime) OnInvalidate(fn func()) {
	if l.Invalidated() {
		fn()
		return
	}
	l.cleanups = append(l.cleanups, fn)
}

// Invalidate runs every registered cleanup once, in registration order.
// Calling it again is a no-op.
func (l *Lifetime) Invalidate() {
	if l.Invalidated() {
		return
	}
	l.invalidated = true
	cleanups := l.cleanups
	l.cleanups = nil
	for _, fn := range cleanups {
		fn()
	}
}

// Renew invalidates l and returns its replacement. There is no window in
// which the caller holds no valid lifetime.
func (l *Lifetime) Renew() *Lifetime {
	next := NewLifetime()
	l.Invalidate()
	return next
}

// Len returns the number of cleanups still pending.
func (l *Lifetime) Len() int {
	if l == nil {
		return 0
	}
	return len(l.cleanups)
}
