package epoch

// Clock supplies "now" stamps to the engines. Injecting a Clock keeps
// commit and merge behavior reproducible in tests; production code uses
// SystemClock.
type Clock interface {
	Now() Stamp
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() Stamp { return Now() }
