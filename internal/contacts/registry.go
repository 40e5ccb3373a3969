// Package contacts tracks every chat the bot has ever seen. The set is
// advisory only: it feeds the best-effort fallback when the configured
// operator chat is absent or unreachable, and a lead may end up in a
// non-operator chat if that chat is the sole fallback candidate.
package contacts

import "sync"

// Registry is an insertion-ordered set of chat IDs. It grows
// monotonically for the process lifetime and is never pruned.
type Registry struct {
	mu    sync.RWMutex
	seen  map[int64]struct{}
	order []int64
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[int64]struct{})}
}

// Remember records a chat ID. Re-recording keeps the first-seen position.
func (r *Registry) Remember(chatID int64) {
	if r == nil || chatID == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[chatID]; ok {
		return
	}
	r.seen[chatID] = struct{}{}
	r.order = append(r.order, chatID)
}

// Known returns all recorded chat IDs in first-seen order.
func (r *Registry) Known() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]int64, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports the number of distinct chats seen.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
