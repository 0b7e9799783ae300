package results

import "sync"

// Store holds aggregated results and timelines in process memory.
// Records are keyed by session ID with last-write-wins semantics; the most
// recently written session doubles as the "latest" record so single-session
// read endpoints keep their contract. Data is lost on restart.
type Store struct {
	mu        sync.RWMutex
	results   map[string]map[string]any
	timelines map[string]any
	latest    string
}

// NewStore creates an empty results store.
func NewStore() *Store {
	return &Store{
		results:   make(map[string]map[string]any),
		timelines: make(map[string]any),
	}
}

// StoreResult replaces the record for a session. Last write wins, no merge.
func (s *Store) StoreResult(sessionID string, record map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[sessionID] = shallowCopy(record)
	s.latest = sessionID
}

// LoadResult returns a shallow copy of the record for a session, or an
// empty object when none exists yet.
func (s *Store) LoadResult(sessionID string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.results[sessionID]; ok {
		return shallowCopy(record)
	}
	return map[string]any{}
}

// LatestResult returns a shallow copy of the most recently stored record,
// or an empty object when nothing has been stored yet.
func (s *Store) LatestResult() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.results[s.latest]; ok {
		return shallowCopy(record)
	}
	return map[string]any{}
}

// StoreTimelines replaces the timelines for a session wholesale.
func (s *Store) StoreTimelines(sessionID string, timelines any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timelines[sessionID] = timelines
	s.latest = sessionID
}

// LoadTimelines returns the timelines for a session. When the slot is empty
// it falls back to timelines nested inside the session's stored result.
func (s *Store) LoadTimelines(sessionID string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timelinesLocked(sessionID)
}

// LatestTimelines returns the timelines for the most recent session.
func (s *Store) LatestTimelines() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timelinesLocked(s.latest)
}

func (s *Store) timelinesLocked(sessionID string) map[string]any {
	if t, ok := s.timelines[sessionID]; ok {
		if m, ok := t.(map[string]any); ok && len(m) > 0 {
			return shallowCopy(m)
		}
	}
	if record, ok := s.results[sessionID]; ok {
		if nested, ok := record["interview_timelines"].(map[string]any); ok {
			return shallowCopy(nested)
		}
	}
	return map[string]any{}
}

func shallowCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
