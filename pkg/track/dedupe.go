package track

import (
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DedupeStore persists the per-day tracking flags that suppress duplicate
// event submissions. Keys embed the calendar date as their last segment
// (analytics:<type>:<target>:<YYYY-MM-DD>).
type DedupeStore interface {
	// MarkOnce atomically checks and sets the flag for key. It returns
	// true when the key was newly marked, false when it was already set.
	MarkOnce(key string, ttl time.Duration) (bool, error)

	// DeleteOlderThan removes flags whose embedded date sorts before
	// cutoff (YYYY-MM-DD), returning how many were deleted.
	DeleteOlderThan(cutoff string) (int, error)

	Close() error
}

var dateSuffix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// keyDate extracts the date segment from a dedupe key.
func keyDate(key string) (string, bool) {
	i := strings.LastIndexByte(key, ':')
	if i < 0 {
		return "", false
	}
	d := key[i+1:]
	return d, dateSuffix.MatchString(d)
}

// BadgerStore is the persistent DedupeStore backing real clients. Entries
// carry a TTL so Badger's own expiry bounds growth even if DeleteOlderThan
// never runs.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database at path.
func NewBadgerStore(path string) (*BadgerStore, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) MarkOnce(key string, ttl time.Duration) (bool, error) {
	marked := false
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		marked = true
		return txn.SetEntry(badger.NewEntry([]byte(key), []byte{1}).WithTTL(ttl))
	})
	if errors.Is(err, badger.ErrConflict) {
		// A concurrent caller marked the same key first.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return marked, nil
}

func (s *BadgerStore) DeleteOlderThan(cutoff string) (int, error) {
	count := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().KeyCopy(nil)
			if d, ok := keyDate(string(key)); ok && d < cutoff {
				stale = append(stale, key)
			}
		}
		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-process DedupeStore for tests and short-lived
// clients. Flags are lost on restart.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expires: make(map[string]time.Time)}
}

func (s *MemoryStore) MarkOnce(key string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if exp, ok := s.expires[key]; ok && time.Now().Before(exp) {
		return false, nil
	}
	s.expires[key] = time.Now().Add(ttl)
	return true, nil
}

func (s *MemoryStore) DeleteOlderThan(cutoff string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for key := range s.expires {
		if d, ok := keyDate(key); ok && d < cutoff {
			delete(s.expires, key)
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
