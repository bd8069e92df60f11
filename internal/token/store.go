// Package token holds the one-time download tokens handed out after a
// verified payment. Tokens live in process memory only: a restart
// invalidates outstanding download links.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("token not found")
	ErrExpired  = errors.New("token expired")
)

const valueBytes = 20 // 160 bits of entropy, hex-encoded to 40 chars

type entry struct {
	expiresAt  time.Time
	courseName string
}

type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Issue generates a random token bound to courseName, valid for ttl.
func (s *Store) Issue(courseName string, ttl time.Duration) (string, error) {
	buf := make([]byte, valueBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	value := hex.EncodeToString(buf)

	s.mu.Lock()
	s.entries[value] = entry{
		expiresAt:  s.now().Add(ttl),
		courseName: courseName,
	}
	s.mu.Unlock()

	return value, nil
}

// Redeem looks up and removes the token in one step, so at most one of any
// number of concurrent redemptions of the same value can succeed. An expired
// entry is purged and reported as ErrExpired.
func (s *Store) Redeem(value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[value]
	if !ok {
		return "", ErrNotFound
	}
	delete(s.entries, value)

	if s.now().After(e.expiresAt) {
		return "", ErrExpired
	}
	return e.courseName, nil
}

// PurgeExpired removes entries past their expiry and reports how many were
// dropped. Redeem checks expiry on its own; the sweep only keeps abandoned
// tokens from accumulating.
func (s *Store) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for value, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, value)
			purged++
		}
	}
	return purged
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
