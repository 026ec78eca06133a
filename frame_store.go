package gui

// stateEntry wraps a state value with frame tracking for staleness detection.
type stateEntry[T any] struct {
	value     T
	lastFrame uint64
}

// FrameStore is a type-safe store for per-ID state that survives across
// frames as long as it is touched every frame.
//
// Each Context owns its stores; there is no package-level registry, so
// independent contexts never see each other's state.
//
//	store := gui.NewFrameStore[panelState]()
//	st, created := store.Get(id, panelState{})
//	...
//	store.Sweep() // once per frame, drops untouched entries
type FrameStore[T any] struct {
	states map[ID]*stateEntry[T]
	frame  uint64
}

// NewFrameStore creates an empty store.
func NewFrameStore[T any]() *FrameStore[T] {
	return &FrameStore[T]{
		states: make(map[ID]*stateEntry[T]),
	}
}

// Get retrieves state for id, creating it from defaultVal if absent.
// The entry is marked as used this frame. created reports whether the
// entry was new.
func (s *FrameStore[T]) Get(id ID, defaultVal T) (state *T, created bool) {
	if entry, ok := s.states[id]; ok {
		entry.lastFrame = s.frame
		return &entry.value, false
	}
	entry := &stateEntry[T]{value: defaultVal, lastFrame: s.frame}
	s.states[id] = entry
	return &entry.value, true
}

// Lookup returns the state for id without marking it used, or nil.
func (s *FrameStore[T]) Lookup(id ID) *T {
	if entry, ok := s.states[id]; ok {
		return &entry.value
	}
	return nil
}

// Sweep removes every entry not touched since the previous Sweep and
// starts a new frame. It returns the number of entries removed.
func (s *FrameStore[T]) Sweep() int {
	removed := 0
	for id, entry := range s.states {
		if entry.lastFrame < s.frame {
			delete(s.states, id)
			removed++
		}
	}
	s.frame++
	return removed
}

// Len returns the number of stored entries.
func (s *FrameStore[T]) Len() int {
	return len(s.states)
}

// Reset removes all entries immediately.
func (s *FrameStore[T]) Reset() {
	clear(s.states)
}
