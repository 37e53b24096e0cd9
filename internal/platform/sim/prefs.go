package sim

import "sync"

// Preferences is an in-memory preference source. Watchers run on the
// goroutine that calls Set or Unset, after the store lock is released.
type Preferences struct {
	mu       sync.Mutex
	values   map[string]bool
	watchers map[int]func(key string)
	nextID   int
}

func NewPreferences() *Preferences {
	return &Preferences{
		values:   make(map[string]bool),
		watchers: make(map[int]func(string)),
	}
}

func (p *Preferences) GetBool(key string, def bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.values[key]; ok {
		return v
	}
	return def
}

func (p *Preferences) Watch(fn func(key string)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.watchers[id] = fn
	return func() {
		p.mu.Lock()
		delete(p.watchers, id)
		p.mu.Unlock()
	}
}

// Set stores a value and notifies watchers when it changed.
func (p *Preferences) Set(key string, value bool) {
	p.mu.Lock()
	old, had := p.values[key]
	p.values[key] = value
	p.mu.Unlock()
	if !had || old != value {
		p.notify(key)
	}
}

// Unset removes a value so GetBool falls back to the caller's default.
func (p *Preferences) Unset(key string) {
	p.mu.Lock()
	_, had := p.values[key]
	delete(p.values, key)
	p.mu.Unlock()
	if had {
		p.notify(key)
	}
}

func (p *Preferences) notify(key string) {
	p.mu.Lock()
	fns := make([]func(string), 0, len(p.watchers))
	for _, fn := range p.watchers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()
	for _, fn := range fns {
		fn(key)
	}
}
