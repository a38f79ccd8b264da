package feed

import (
	"errors"
	"sync/atomic"
)

// ErrNotReady reports a read before the first successful poll cycle. Callers
// must surface it distinctly from a snapshot with zero vehicles running.
var ErrNotReady = errors.New("no feed snapshot published yet")

// Store holds the current Snapshot behind an atomically-replaceable handle.
// Readers never block the writer and always observe a complete snapshot:
// either the previous one or the fully-constructed next one.
type Store struct {
	cur atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	return &Store{}
}

// Publish atomically replaces the current snapshot.
func (s *Store) Publish(sn *Snapshot) {
	s.cur.Store(sn)
}

// Current returns the latest published snapshot, or ErrNotReady before the
// first publish.
func (s *Store) Current() (*Snapshot, error) {
	if sn := s.cur.Load(); sn != nil {
		return sn, nil
	}
	return nil, ErrNotReady
}
