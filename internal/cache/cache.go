package cache

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pep299/club-recommender/internal/session"
)

// ErrCacheMiss is returned when a key is not cached or has expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores computed keyword profiles keyed by answer-set hash, so a
// session whose answers have not changed skips the text-generation call.
type Cache interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}

// Entry is one cached keyword profile.
type Entry struct {
	Key       string    `json:"key"`
	Profile   []string  `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProfileKey derives a stable cache key from an answer set. Answers are
// sorted by question id first so submission order does not change the key.
func ProfileKey(answers []session.Answer) string {
	pairs := make([]string, 0, len(answers))
	for _, a := range answers {
		pairs = append(pairs, a.QuestionID+"="+a.OptionID)
	}
	sort.Strings(pairs)
	return fmt.Sprintf("%x", md5.Sum([]byte(strings.Join(pairs, "&"))))
}

// Memory implements an in-memory profile cache.
type Memory struct {
	entries     map[string]*Entry
	mutex       sync.RWMutex
	duration    time.Duration
	stopCleanup chan struct{}
}

// NewMemory creates an in-memory cache with the given entry lifetime.
func NewMemory(duration time.Duration) *Memory {
	c := &Memory{
		entries:     make(map[string]*Entry),
		duration:    duration,
		stopCleanup: make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Get retrieves an entry, treating expired entries as misses.
func (c *Memory) Get(ctx context.Context, key string) (*Entry, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, ErrCacheMiss
	}
	if time.Now().After(entry.ExpiresAt) {
		delete(c.entries, key)
		return nil, ErrCacheMiss
	}
	return entry, nil
}

// Set stores an entry and stamps its lifetime.
func (c *Memory) Set(ctx context.Context, key string, entry *Entry) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry.Key = key
	entry.CreatedAt = time.Now()
	entry.ExpiresAt = time.Now().Add(c.duration)

	c.entries[key] = entry
	return nil
}

// Delete removes an entry.
func (c *Memory) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
	return nil
}

// Clear removes every entry.
func (c *Memory) Clear(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]*Entry)
	return nil
}

// Close stops the background cleanup goroutine.
func (c *Memory) Close() error {
	close(c.stopCleanup)
	return nil
}

// cleanup periodically removes expired entries.
func (c *Memory) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *Memory) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}
}
