package records

import (
	"context"
	"errors"
	"sync/atomic"
)

var errNoSource = errors.New("records: no source to reload from")

// Live holds the store currently being served. Each Store stays immutable;
// Reload swaps in a freshly loaded one.
type Live struct {
	src Source
	cur atomic.Pointer[Store]
}

// NewLive serves s and reloads from src. A nil s is served as an empty store.
func NewLive(src Source, s *Store) *Live {
	if s == nil {
		s = NewStore(nil)
	}
	l := &Live{src: src}
	l.cur.Store(s)
	return l
}

func (l *Live) Store() *Store { return l.cur.Load() }

// Reload loads src and swaps it in. On failure the current store keeps serving.
func (l *Live) Reload(ctx context.Context) (*Store, error) {
	if l.src == nil {
		return l.Store(), errNoSource
	}
	s, err := Load(ctx, l.src)
	if err != nil {
		return l.Store(), err
	}
	l.cur.Store(s)
	return s, nil
}
