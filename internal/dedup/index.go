package dedup

import "sync"

// Index tracks which event identities have already been scheduled. Membership
// lasts for the process lifetime and only grows; the process restarts daily
// in practice, which bounds it.
type Index struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewIndex() *Index {
	return &Index{seen: make(map[string]struct{})}
}

// ShouldSchedule reports whether identity has not been scheduled yet.
func (i *Index) ShouldSchedule(identity string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.seen[identity]
	return !ok
}

// MarkScheduled records identity as scheduled. Idempotent.
func (i *Index) MarkScheduled(identity string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.seen[identity] = struct{}{}
}

func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.seen)
}
