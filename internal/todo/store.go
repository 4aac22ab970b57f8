package todo

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// Slot is a single-key persistent blob store.
type Slot interface {
	// Get returns ok == false when nothing is stored under key.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key (default DefaultKey).
func WithKey(key string) Option { return func(s *Store) { s.key = key } }

// WithLogger sets the logger storage failures are reported to.
func WithLogger(l *log.Logger) Option { return func(s *Store) { s.logger = l } }

// WithIDFunc replaces the id generator used by Add.
func WithIDFunc(fn func() string) Option { return func(s *Store) { s.newID = fn } }

// Store owns the canonical list. It loads once, then persists the full
// list after every change through a single background writer, so the
// last save issued is the last one written.
type Store struct {
	slot   Slot
	key    string
	logger *log.Logger
	newID  func() string

	mu      sync.Mutex
	list    model.List
	loaded  bool
	loading bool
	closed  bool
	pending model.List
	dirty   bool
	subs    map[int]func(model.List)
	nextSub int

	kick    chan struct{}
	flushc  chan chan struct{}
	quit    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New returns a Store backed by slot and starts its writer goroutine.
// Call Close to stop it.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:    slot,
		key:     DefaultKey,
		logger:  log.Default(),
		newID:   NewID,
		list:    model.List{},
		subs:    make(map[int]func(model.List)),
		kick:    make(chan struct{}, 1),
		flushc:  make(chan chan struct{}),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	go s.run()
	return s
}

// Load reads the persisted list. Missing, unreadable or malformed data
// yields an empty list; failures are logged, never returned. Only the
// first call touches the slot.
func (s *Store) Load(ctx context.Context) model.List {
	s.mu.Lock()
	if s.loaded || s.loading {
		l := s.list
		s.mu.Unlock()
		s.logger.Debug("load skipped", "key", s.key, "loaded", s.loaded)
		return l
	}
	s.loading = true
	s.mu.Unlock()

	l := s.read(ctx)

	s.mu.Lock()
	s.list = l
	s.loaded = true
	s.loading = false
	subs := s.subscribers()
	s.mu.Unlock()

	s.logger.Debug("loaded", "key", s.key, "items", len(l))
	notify(subs, l)
	return l
}

func (s *Store) read(ctx context.Context) model.List {
	b, ok, err := s.slot.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("failed to load todos", "err", &StorageReadError{Key: s.key, Err: err})
		return model.List{}
	}
	if !ok || len(b) == 0 {
		return model.List{}
	}
	l, err := Decode(b)
	if err != nil {
		s.logger.Error("discarding stored todos", "err", &StorageReadError{Key: s.key, Err: err})
		return model.List{}
	}
	return l
}

// Loaded reports whether Load has completed.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// List returns the current list. It is empty until Load completes and
// must not be modified.
func (s *Store) List() model.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list
}

// Add appends an item with the given text. Whitespace-only text is a no-op.
func (s *Store) Add(text string) (model.List, error) {
	return s.apply("add", func(l model.List) (model.List, bool) {
		return add(l, text, s.newID)
	})
}

// ToggleComplete flips the completed flag of the item with id.
func (s *Store) ToggleComplete(id string) (model.List, error) {
	return s.apply("toggle", func(l model.List) (model.List, bool) {
		return toggle(l, id)
	})
}

// Delete removes the item with id.
func (s *Store) Delete(id string) (model.List, error) {
	return s.apply("delete", func(l model.List) (model.List, bool) {
		return remove(l, id)
	})
}

func (s *Store) apply(op string, fn func(model.List) (model.List, bool)) (model.List, error) {
	s.mu.Lock()
	if s.closed {
		l := s.list
		s.mu.Unlock()
		s.logger.Warn("mutation after close ignored", "op", op)
		return l, ErrClosed
	}
	if !s.loaded {
		s.mu.Unlock()
		return model.List{}, ErrNotLoaded
	}
	next, changed := fn(s.list)
	if !changed {
		l := s.list
		s.mu.Unlock()
		return l, nil
	}
	s.list = next
	s.pending = next
	s.dirty = true
	subs := s.subscribers()
	s.mu.Unlock()

	select {
	case s.kick <- struct{}{}:
	default:
	}
	s.logger.Debug("mutated", "op", op, "items", len(next))
	notify(subs, next)
	return next, nil
}

// Subscribe registers fn to receive the list after load and after every
// change. fn runs on the goroutine that caused the change.
func (s *Store) Subscribe(fn func(model.List)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) subscribers() []func(model.List) {
	out := make([]func(model.List), 0, len(s.subs))
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subs[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(subs []func(model.List), l model.List) {
	for _, fn := range subs {
		fn(l)
	}
}

// Flush waits until every save issued so far has been attempted.
func (s *Store) Flush(ctx context.Context) error {
	reply := make(chan struct{})
	select {
	case s.flushc <- reply:
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-reply:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close writes any pending save and stops the writer goroutine. Later
// mutations fail with ErrClosed.
func (s *Store) Close(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.quit)
	})
	select {
	case <-s.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.kick:
			s.writePending()
		case reply := <-s.flushc:
			s.writePending()
			close(reply)
		case <-s.quit:
			s.writePending()
			return
		}
	}
}

// writePending saves the newest unsaved snapshot, if any. Older snapshots
// replaced before the writer got to them are never written.
func (s *Store) writePending() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	l := s.pending
	s.pending = nil
	s.dirty = false
	s.mu.Unlock()

	if err := s.save(context.Background(), l); err != nil {
		s.logger.Error("failed to save todos", "err", err)
		return
	}
	s.logger.Debug("saved", "key", s.key, "items", len(l))
}

func (s *Store) save(ctx context.Context, l model.List) error {
	b, err := Encode(l)
	if err != nil {
		return &StorageWriteError{Key: s.key, Err: err}
	}
	if err := s.slot.Set(ctx, s.key, b); err != nil {
		return &StorageWriteError{Key: s.key, Err: err}
	}
	return nil
}
