package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/sandevgo/brainchat/internal/core"
)

// RecordStore maps generated message ids to the exchange that produced
// them. Ids are the creation time in milliseconds; a collision moves the
// id forward to the next free millisecond.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]core.Record
	lastMS  int64
	lastID  string
	now     func() time.Time
}

func NewRecordStore(now func() time.Time) *RecordStore {
	if now == nil {
		now = time.Now
	}
	return &RecordStore{
		records: make(map[string]core.Record),
		now:     now,
	}
}

func (s *RecordStore) Add(rec core.Record) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	if ms <= s.lastMS {
		ms = s.lastMS + 1
	}
	s.lastMS = ms

	id := strconv.FormatInt(ms, 10)
	s.records[id] = rec
	s.lastID = id
	return id
}

func (s *RecordStore) Get(id string) (core.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// Latest returns the id of the most recently stored record.
func (s *RecordStore) Latest() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastID, s.lastID != ""
}

func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
