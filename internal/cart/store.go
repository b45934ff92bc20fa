package cart

import (
	"context"
	"errors"
	"sync"

	"wholesale-be/internal/logger"
	"wholesale-be/internal/storage"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

const (
	keyPrefix = "cart:"
	lockCount = 256
)

// Key is the storage key holding a session's cart.
func Key(session string) string {
	return keyPrefix + session
}

// Listener is called after a session's cart has changed.
type Listener func(ctx context.Context, session string, c Cart)

// Store owns per-session cart snapshots on top of a key-value backend.
// Updates to the same session are serialised within the process through a
// fixed set of striped locks.
type Store struct {
	kv storage.KV

	locks [lockCount]sync.Mutex

	mu        sync.RWMutex
	listeners map[int]Listener
	nextID    int
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv, listeners: make(map[int]Listener)}
}

// Get loads the session's cart. Missing or unreadable data is an empty cart.
func (s *Store) Get(ctx context.Context, session string) (Cart, error) {
	c, _, err := s.load(ctx, session)
	return c, err
}

// load reports corrupt when stored data existed but could not be decoded.
func (s *Store) load(ctx context.Context, session string) (c Cart, corrupt bool, err error) {
	data, err := s.kv.Get(ctx, Key(session))
	if errors.Is(err, storage.ErrNotFound) {
		return Cart{}, false, nil
	}
	if err != nil {
		return Cart{}, false, err
	}

	c, err = Decode(data)
	if err != nil {
		logger.FromCtx(ctx).Warn("discarding stored cart",
			zap.String("layer", "store"),
			zap.String("key", Key(session)),
			zap.Error(err),
		)
		return Cart{}, true, nil
	}
	return c, false, nil
}

// Set replaces the session's cart unconditionally and notifies listeners.
func (s *Store) Set(ctx context.Context, session string, c Cart) error {
	lock := s.lock(session)
	lock.Lock()
	defer lock.Unlock()

	if err := s.write(ctx, session, c); err != nil {
		return err
	}
	s.notify(ctx, session, c)
	return nil
}

// Update applies fn to the current cart and persists the result. When fn
// returns an equal cart nothing is written and no listener runs, except that
// an unreadable stored cart is deleted.
func (s *Store) Update(ctx context.Context, session string, fn func(Cart) (Cart, error)) (Cart, error) {
	lock := s.lock(session)
	lock.Lock()
	defer lock.Unlock()

	current, corrupt, err := s.load(ctx, session)
	if err != nil {
		return Cart{}, err
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if next.Equal(current) {
		if corrupt {
			// Drop the unreadable payload even though the cart did not change.
			if err := s.kv.Delete(ctx, Key(session)); err != nil {
				return current, err
			}
		}
		return current, nil
	}

	if err := s.write(ctx, session, next); err != nil {
		return current, err
	}
	s.notify(ctx, session, next)
	return next, nil
}

// Subscribe registers fn for change notifications until the returned func is called.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) write(ctx context.Context, session string, c Cart) error {
	if c.IsEmpty() {
		return s.kv.Delete(ctx, Key(session))
	}

	data, err := Encode(c)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, Key(session), data)
}

func (s *Store) notify(ctx context.Context, session string, c Cart) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(ctx, session, c)
	}
}

func (s *Store) lock(session string) *sync.Mutex {
	return &s.locks[xxhash.Sum64String(session)%lockCount]
}
