package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/SerhiiRomanenko/Trailer-Strore-Client-2/models"
)

// persistedState is the durable subset written to redis.
type persistedState struct {
	Token     string            `json:"token,omitempty"`
	Cart      []models.CartItem `json:"cart,omitempty"`
	Favorites []string          `json:"favorites,omitempty"`
}

const (
	// idleTimeout bounds how long a session without traffic stays in
	// memory. The durable subset survives in redis, so a returning browser
	// still gets its cart back; only the navigation and wizard state of a
	// truly idle visitor is released.
	idleTimeout   = time.Hour
	sweepInterval = 5 * time.Minute
)

// Manager owns the live sessions. With a redis client it also restores and
// persists the durable subset; without one, sessions live and die with the
// process. Sessions idle past idleTimeout are swept out of memory.
type Manager struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	redis     *redis.Client
	ttl       time.Duration
	idle      time.Duration
	lastSweep time.Time
}

func NewManager(rdb *redis.Client, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		redis:     rdb,
		ttl:       ttl,
		idle:      idleTimeout,
		lastSweep: time.Now(),
	}
}

// GetOrCreate returns the session for id, restoring its durable state from
// redis on first sight. An empty or unknown id yields a fresh session with
// a new uuid.
func (m *Manager) GetOrCreate(id string) *Session {
	now := time.Now()
	m.mu.Lock()
	expired := m.sweepLocked(now)
	s, ok := m.sessions[id]
	if !ok {
		if id == "" {
			id = uuid.NewString()
		}
		s = newSession(id)
		m.sessions[id] = s
	}
	m.mu.Unlock()

	for _, dead := range expired {
		dead.ClearWizard()
	}
	if ok {
		s.touch()
		return s
	}
	m.restore(s)
	return s
}

// sweepLocked evicts sessions whose last request is older than the idle
// timeout. Caller holds m.mu; the evicted sessions are returned so their
// pending lookups can be closed outside the lock.
func (m *Manager) sweepLocked(now time.Time) []*Session {
	if now.Sub(m.lastSweep) < sweepInterval {
		return nil
	}
	m.lastSweep = now
	var expired []*Session
	for id, s := range m.sessions {
		if now.Sub(s.LastSeen()) > m.idle {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	if len(expired) > 0 {
		logrus.Infof("[session] evicted %d idle sessions, %d remain in memory", len(expired), len(m.sessions))
	}
	return expired
}

// Persist writes the session's durable subset to redis. No-op without redis.
func (m *Manager) Persist(s *Session) {
	if m.redis == nil {
		return
	}
	state := persistedState{
		Token:     s.Token(),
		Cart:      s.Cart.Snapshot(),
		Favorites: s.Favorites.IDs(),
	}
	payload, err := json.Marshal(state)
	if err != nil {
		logrus.Warnf("[session] failed to marshal state for %s: %v", s.ID, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := m.redis.Set(ctx, sessionKey(s.ID), payload, m.ttl).Err(); err != nil {
		logrus.Warnf("[session] failed to persist %s: %v", s.ID, err)
	}
}

func (m *Manager) restore(s *Session) {
	if m.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	payload, err := m.redis.Get(ctx, sessionKey(s.ID)).Bytes()
	if err != nil {
		return
	}
	var state persistedState
	if err := json.Unmarshal(payload, &state); err != nil {
		logrus.Warnf("[session] corrupt persisted state for %s: %v", s.ID, err)
		return
	}
	s.SetToken(state.Token)
	s.Cart.Replace(state.Cart)
	s.Favorites.Replace(state.Favorites)
}

func sessionKey(id string) string {
	return "sess:" + id
}
