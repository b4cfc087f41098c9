package realtime

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-process Store with the same snapshot semantics as
// the Mongo adapter. It backs the tests and local runs without a database.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]bson.Raw
	subs map[string][]*memSub
}

type memSub struct {
	fn     SnapshotFunc
	mu     sync.Mutex
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: map[string]map[string]bson.Raw{},
		subs: map[string][]*memSub{},
	}
}

func (s *MemoryStore) Get(_ context.Context, collection string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(collection), nil
}

func (s *MemoryStore) GetOne(_ context.Context, collection, id string) (bson.Raw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (s *MemoryStore) Write(_ context.Context, collection, id string, value interface{}) error {
	raw, err := bson.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	if s.data[collection] == nil {
		s.data[collection] = map[string]bson.Raw{}
	}
	s.data[collection][id] = raw
	snap, subs := s.snapshotAndSubsLocked(collection)
	s.mu.Unlock()

	notify(subs, snap)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	raw, ok := s.data[collection][id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		s.mu.Unlock()
		return err
	}
	for path, val := range fields {
		if err := applyDotted(doc, path, val); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	updated, err := bson.Marshal(doc)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.data[collection][id] = updated
	snap, subs := s.snapshotAndSubsLocked(collection)
	s.mu.Unlock()

	notify(subs, snap)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, collection, id string) error {
	s.mu.Lock()
	delete(s.data[collection], id)
	snap, subs := s.snapshotAndSubsLocked(collection)
	s.mu.Unlock()

	notify(subs, snap)
	return nil
}

func (s *MemoryStore) Subscribe(_ context.Context, collection string, fn SnapshotFunc, _ ErrorFunc) (Unsubscribe, error) {
	sub := &memSub{fn: fn}

	s.mu.Lock()
	s.subs[collection] = append(s.subs[collection], sub)
	snap := s.snapshotLocked(collection)
	s.mu.Unlock()

	// Initial full snapshot, same as the Mongo adapter.
	sub.deliver(snap)

	return func() {
		sub.mu.Lock()
		sub.closed = true
		sub.mu.Unlock()

		s.mu.Lock()
		list := s.subs[collection]
		for i, candidate := range list {
			if candidate == sub {
				s.subs[collection] = append(list[:i], list[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}, nil
}

func (s *MemoryStore) snapshotLocked(collection string) Snapshot {
	snap := Snapshot{}
	for id, raw := range s.data[collection] {
		snap[id] = raw
	}
	return snap
}

func (s *MemoryStore) snapshotAndSubsLocked(collection string) (Snapshot, []*memSub) {
	subs := make([]*memSub, len(s.subs[collection]))
	copy(subs, s.subs[collection])
	return s.snapshotLocked(collection), subs
}

func (sub *memSub) deliver(snap Snapshot) {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.mu.Unlock()
	sub.fn(snap)
}

func notify(subs []*memSub, snap Snapshot) {
	for _, sub := range subs {
		sub.deliver(snap)
	}
}

// applyDotted sets a value at a dotted path inside a decoded document,
// descending through nested documents and array indexes. Missing map
// segments are created; an out-of-range array index is an error.
func applyDotted(doc bson.M, path string, val interface{}) error {
	parts := strings.Split(path, ".")
	var parent interface{} = doc

	for i, part := range parts[:len(parts)-1] {
		switch p := parent.(type) {
		case bson.M:
			child, ok := p[part]
			if !ok {
				next := bson.M{}
				p[part] = next
				parent = next
				continue
			}
			parent = child
		case primitive.A:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(p) {
				return fmt.Errorf("realtime: bad array index %q in %q", part, path)
			}
			parent = p[idx]
		default:
			return fmt.Errorf("realtime: cannot traverse %q in %q", strings.Join(parts[:i+1], "."), path)
		}
	}

	last := parts[len(parts)-1]
	switch p := parent.(type) {
	case bson.M:
		p[last] = val
	case primitive.A:
		idx, err := strconv.Atoi(last)
		if err != nil || idx < 0 || idx >= len(p) {
			return fmt.Errorf("realtime: bad array index %q in %q", last, path)
		}
		p[idx] = val
	default:
		return fmt.Errorf("realtime: cannot set %q", path)
	}
	return nil
}
