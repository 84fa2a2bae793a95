package storage

// MemCachedStore is a wrapper around persistent store that caches all changes
// being made for them to be later flushed in one batch.
type MemCachedStore struct {
	MemoryStore

	// Persistent Store.
	ps Store
}

// KeyValue represents key-value pair.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// NewMemCachedStore creates a new MemCachedStore object.
func NewMemCachedStore(lower Store) *MemCachedStore {
	return &MemCachedStore{
		MemoryStore: *NewMemoryStore(),
		ps:          lower,
	}
}

// Get implements the Store interface.
func (s *MemCachedStore) Get(key []byte) ([]byte, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	k := string(key)
	if val, ok := s.mem[k]; ok {
		return val, nil
	}
	if _, ok := s.del[k]; ok {
		return nil, ErrKeyNotFound
	}
	return s.ps.Get(key)
}

// Seek implements the Store interface. It merges cached changes with the
// lower layer, cached values shadow persisted ones and deleted keys are
// not reported. Cached entries are enumerated before persisted ones, so
// there is no global key ordering across the two.
func (s *MemCachedStore) Seek(key []byte, f func(k, v []byte)) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	s.MemoryStore.seek(key, f)
	s.ps.Seek(key, func(k, v []byte) {
		elem := string(k)
		// If it's in mem, we already called f() for it in MemoryStore.seek().
		_, present := s.mem[elem]
		if !present {
			// If it's in del, we shouldn't be calling f() anyway.
			_, present = s.del[elem]
		}
		if !present {
			f(k, v)
		}
	})
}

// Persist flushes all the MemCachedStore contents into the (supposedly)
// persistent store ps. It returns the number of keys flushed.
func (s *MemCachedStore) Persist() (int, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	keys := len(s.mem) + len(s.del)
	if keys == 0 {
		return 0, nil
	}

	batch := s.ps.Batch()
	for k, v := range s.mem {
		batch.Put([]byte(k), v)
	}
	for k := range s.del {
		batch.Delete([]byte(k))
	}
	err := s.ps.PutBatch(batch)
	if err != nil {
		return 0, err
	}
	s.mem = make(map[string][]byte)
	s.del = make(map[string]bool)
	return keys, nil
}

// Close implements Store interface, clears up memory and closes the lower
// layer Store.
func (s *MemCachedStore) Close() error {
	// It's always successful.
	_ = s.MemoryStore.Close()
	return s.ps.Close()
}
