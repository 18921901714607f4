package resilience

import "golang.org/x/sync/singleflight"

// SingleFlight deduplicates concurrent calls for the same key. The zero
// value is ready to use.
type SingleFlight struct {
	group singleflight.Group
}

// Do runs fn once per in-flight key; shared reports whether the result was
// handed to more than one caller.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	return g.group.Do(key, fn)
}

// DoChan is Do with the result delivered on a channel, so a caller can
// stop waiting without affecting the others.
func (g *SingleFlight) DoChan(key string, fn func() (any, error)) <-chan singleflight.Result {
	return g.group.DoChan(key, fn)
}

// Forget drops key so the next call runs fn again.
func (g *SingleFlight) Forget(key string) {
	g.group.Forget(key)
}
