package reconcile

import "sync"

// RunGuard tracks in-flight runs per key (typically a location).
// It never blocks: callers learn about an overlapping run and decide what to do.
type RunGuard struct {
	mu       sync.Mutex
	inflight map[string][]string
}

// NewRunGuard creates an empty guard.
func NewRunGuard() *RunGuard {
	return &RunGuard{inflight: make(map[string][]string)}
}

// Begin registers token under key. It returns the tokens of runs already in flight for
// the same key and a release func that must be called when the run ends.
func (g *RunGuard) Begin(key, token string) (overlapping []string, release func()) {
	g.mu.Lock()
	overlapping = append(overlapping, g.inflight[key]...)
	g.inflight[key] = append(g.inflight[key], token)
	g.mu.Unlock()

	var once sync.Once
	return overlapping, func() {
		once.Do(func() { g.end(key, token) })
	}
}

func (g *RunGuard) end(key, token string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	tokens := g.inflight[key]
	for i, t := range tokens {
		if t == token {
			tokens = append(tokens[:i], tokens[i+1:]...)
			break
		}
	}
	if len(tokens) == 0 {
		delete(g.inflight, key)
		return
	}
	g.inflight[key] = tokens
}

// InFlight returns the number of runs currently registered for key.
func (g *RunGuard) InFlight(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inflight[key])
}
