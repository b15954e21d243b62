package database

import "sync"

// hub fans out "collection changed" signals to watchers. Signals carry no
// payload; a watcher re-runs its query. Each subscriber channel holds at
// most one pending signal, so bursts of writes coalesce.
type hub struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[int]chan struct{})}
}

func (h *hub) subscribe(collection string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[int]chan struct{})
	}
	h.subs[collection][id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[collection], id)
			h.mu.Unlock()
		})
	}
}

func (h *hub) publish(collections ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, name := range collections {
		for _, ch := range h.subs[name] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

// changeSet records collections written inside a transaction; they are
// published only once the outermost transaction commits.
type changeSet map[string]struct{}

func (cs changeSet) add(name string) { cs[name] = struct{}{} }

func (cs changeSet) merge(other changeSet) {
	for name := range other {
		cs[name] = struct{}{}
	}
}

func (cs changeSet) names() []string {
	out := make([]string, 0, len(cs))
	for name := range cs {
		out = append(out, name)
	}
	return out
}
