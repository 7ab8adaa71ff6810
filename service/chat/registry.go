package chat

import (
	"sort"
	"sync"
)

// Registry maps users to their live connections. A user is present iff at
// least one connection is registered; empty sets are never kept.
type Registry struct {
	mu     sync.RWMutex
	byUser map[UserID]map[string]*Client // user -> conn_id -> client
	total  int
}

func NewRegistry() *Registry {
	return &Registry{byUser: make(map[UserID]map[string]*Client)}
}

// Register adds c under userID and reports whether this was the user's first connection.
func (r *Registry) Register(userID UserID, c *Client) (first bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.byUser[userID]
	if m == nil {
		m = make(map[string]*Client)
		r.byUser[userID] = m
		first = true
	}
	if _, dup := m[c.ConnID]; !dup {
		r.total++
	}
	m[c.ConnID] = c
	return first
}

// Unregister removes connID from userID and reports whether it was the last one.
// Unknown users or handles are a no-op.
func (r *Registry) Unregister(userID UserID, connID string) (last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.byUser[userID]
	if m == nil {
		return false
	}
	if _, ok := m[connID]; !ok {
		return false
	}
	delete(m, connID)
	r.total--
	if len(m) == 0 {
		delete(r.byUser, userID)
		return true
	}
	return false
}

// ConnectionsFor returns a snapshot of the user's connections.
func (r *Registry) ConnectionsFor(userID UserID) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m := r.byUser[userID]
	if len(m) == 0 {
		return nil
	}
	out := make([]*Client, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

func (r *Registry) IsOnline(userID UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID]) > 0
}

// OnlineUserIDs returns a sorted copy of the online set.
func (r *Registry) OnlineUserIDs() []UserID {
	r.mu.RLock()
	out := make([]UserID, 0, len(r.byUser))
	for id := range r.byUser {
		out = append(out, id)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// All returns a snapshot of every live connection.
func (r *Registry) All() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Client, 0, r.total)
	for _, m := range r.byUser {
		for _, c := range m {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) Count() (users, conns int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser), r.total
}
