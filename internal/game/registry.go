package game

import (
	"sort"
	"sync"

	"github.com/gridlabsinc/gridtactoe-backend/internal/apperror"
)

// Registry maps session ids to live sessions. It has its own lock,
// never shared with any session lock, so unrelated games progress
// independently. Ids are assigned once, monotonically, never reused.
type Registry struct {
	mu       sync.Mutex
	sessions map[int]*Session
	nextID   int
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int]*Session),
		nextID:   1,
	}
}

func (that *Registry) Create() *Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	session := NewSession(that.nextID)
	that.sessions[that.nextID] = session
	that.nextID++

	return session
}

func (that *Registry) Get(id int) (*Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return session, nil
}

// ListJoinable returns summaries of sessions open for joining, in
// creation order. The slice is empty, never nil semantics-laden, when
// no session qualifies.
func (that *Registry) ListJoinable() []Summary {
	that.mu.Lock()
	ids := make([]int, 0, len(that.sessions))
	for id := range that.sessions {
		ids = append(ids, id)
	}
	that.mu.Unlock()

	// ids are monotonic, so ascending id order is creation order
	sort.Ints(ids)

	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		session, err := that.Get(id)
		if err != nil {
			continue
		}
		if session.Joinable() {
			summaries = append(summaries, session.Summary())
		}
	}

	return summaries
}

// Remove takes a session out of the registry. The second return is
// false when the session was already gone, which callers use to make
// end-of-game work run exactly once.
func (that *Registry) Remove(id int) (*Session, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[id]
	if ok {
		delete(that.sessions, id)
	}

	return session, ok
}
