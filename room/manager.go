package room

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/palabra/impostor/config"
	"github.com/palabra/impostor/game"
	"github.com/palabra/impostor/logger"
	"github.com/palabra/impostor/monitor"
	"github.com/palabra/impostor/services"
)

// roomCodeChars excludes the characters players misread over a shared
// screen (0/O, 1/I).
const (
	roomCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength = 6
)

// Manager is the process-wide room registry. It is created at startup
// and passed by reference to whoever needs it; there is no package
// singleton.
type Manager struct {
	rooms   map[string]*Room
	mutex   sync.RWMutex
	gameCfg config.GameConfig
	stats   *services.StatsService
	mon     *monitor.Monitor
	rng     *rand.Rand
}

// NewManager builds the registry. A nil rng gets a time-seeded source;
// tests inject a deterministic one that flows into every room's
// shuffles.
func NewManager(gameCfg config.GameConfig, stats *services.StatsService, mon *monitor.Monitor, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{
		rooms:   make(map[string]*Room),
		gameCfg: gameCfg,
		stats:   stats,
		mon:     mon,
		rng:     rng,
	}
}

// CreateRoom opens a room with a fresh code and the host already on
// the roster.
func (m *Manager) CreateRoom(hostID, hostName string, broadcaster Broadcaster) *Room {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	code := m.generateCodeLocked()
	cfg := game.Config{
		ImpostorCount: m.gameCfg.DefaultImpostorCount,
		IncludeHint:   m.gameCfg.DefaultIncludeHint,
	}

	// Each room gets its own rand source: rooms run on their own
	// goroutines and *rand.Rand is not safe for concurrent use.
	roomRng := rand.New(rand.NewSource(m.rng.Int63()))
	r := newRoom(code, cfg, m.gameCfg.MinPlayers, m.gameCfg.MaxPlayers, broadcaster, m.stats, m.mon, roomRng)
	r.members = append(r.members, &Member{ID: hostID, Name: hostName, Friends: []string{}})
	r.hostID = hostID

	m.rooms[code] = r
	if m.mon != nil {
		m.mon.SetActiveRooms(len(m.rooms))
	}
	return r
}

func (m *Manager) generateCodeLocked() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[m.rng.Intn(len(roomCodeChars))]
		}
		if _, taken := m.rooms[string(code)]; !taken {
			return string(code)
		}
	}
}

// GetRoom looks a room up by code, case-insensitively.
func (m *Manager) GetRoom(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	r, exists := m.rooms[normalizeCode(code)]
	return r, exists
}

// GetPlayerRoom finds the room a player currently sits in.
func (m *Manager) GetPlayerRoom(playerID string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, r := range m.rooms {
		if r.HasMember(playerID) {
			return r, true
		}
	}
	return nil, false
}

// RemoveRoom closes a room and drops it from the registry.
func (m *Manager) RemoveRoom(code string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	code = normalizeCode(code)
	if r, exists := m.rooms[code]; exists {
		r.Close()
		delete(m.rooms, code)
		if m.mon != nil {
			m.mon.SetActiveRooms(len(m.rooms))
		}
	}
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// ReapStale removes rooms that are empty or have seen no events for
// longer than idleTTL. Run periodically; it is a safety net behind the
// inline cleanup on leave.
func (m *Manager) ReapStale(idleTTL time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	deadline := time.Now().Add(-idleTTL)
	for code, r := range m.rooms {
		if r.PlayerCount() > 0 && r.IdleSince().After(deadline) {
			continue
		}
		logger.Log.Infow("reaping stale room", "room", code, "players", r.PlayerCount())
		r.Close()
		delete(m.rooms, code)
	}
	if m.mon != nil {
		m.mon.SetActiveRooms(len(m.rooms))
	}
}

func normalizeCode(code string) string {
	return strings.ToUpper(code)
}
