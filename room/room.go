package room

import (
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/palabra/impostor/game"
	"github.com/palabra/impostor/logger"
	"github.com/palabra/impostor/models"
	"github.com/palabra/impostor/monitor"
	"github.com/palabra/impostor/network"
	"github.com/palabra/impostor/services"
	"github.com/palabra/impostor/state"
)

var (
	ErrRoomClosed     = errors.New("room is closed")
	ErrRoomFull       = errors.New("room is full")
	ErrGameInProgress = errors.New("a game is already in progress")
	ErrNotHost        = errors.New("only the host can do that")
	ErrPlayerNotFound = errors.New("player not in room")
)

// Member is one roster entry. Friends holds mutual in-room friend ids.
type Member struct {
	ID      string
	Name    string
	Friends []string
}

// Room is one game room. All mutation runs on the room's own event
// goroutine via Do, so inbound events for a room are processed
// strictly in arrival order and never interleaved. The playerMutex
// only covers roster reads from other goroutines (broadcast fan-out,
// directory lookups).
type Room struct {
	Code      string
	CreatedAt time.Time

	minPlayers int
	maxPlayers int

	hostID      string
	members     []*Member
	config      game.Config
	playerMutex sync.RWMutex

	machine     state.StateMachine
	coord       *game.Coordinator
	broadcaster Broadcaster
	stats       *services.StatsService
	mon         *monitor.Monitor
	rng         *rand.Rand

	events    chan func()
	closeChan chan struct{}
	closeOnce sync.Once

	// lastActive is UnixNano, atomic: written by the event loop, read
	// by the reaper goroutine.
	lastActive atomic.Int64
}

func newRoom(code string, cfg game.Config, minPlayers, maxPlayers int, broadcaster Broadcaster, stats *services.StatsService, mon *monitor.Monitor, rng *rand.Rand) *Room {
	r := &Room{
		Code:        code,
		CreatedAt:   time.Now(),
		minPlayers:  minPlayers,
		maxPlayers:  maxPlayers,
		config:      cfg,
		broadcaster: broadcaster,
		stats:       stats,
		mon:         mon,
		rng:         rng,
		events:      make(chan func(), 64),
		closeChan:   make(chan struct{}),
	}
	r.lastActive.Store(time.Now().UnixNano())

	r.machine = state.NewBaseStateMachine(state.NewLobbyState(r))

	go r.loop()
	return r
}

// loop drains the serialized event queue. One goroutine per room; no
// two events for the same room ever run concurrently.
func (r *Room) loop() {
	for {
		select {
		case fn := <-r.events:
			fn()
			r.lastActive.Store(time.Now().UnixNano())
		case <-r.closeChan:
			return
		}
	}
}

// Do runs fn on the room's event goroutine and waits for it. Returns
// ErrRoomClosed if the room shut down before fn could run.
func (r *Room) Do(fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		fn()
		close(done)
	}

	select {
	case r.events <- wrapped:
	case <-r.closeChan:
		return ErrRoomClosed
	}

	select {
	case <-done:
		return nil
	case <-r.closeChan:
		return ErrRoomClosed
	}
}

// Close shuts the room's event loop down. Idempotent.
func (r *Room) Close() {
	r.closeOnce.Do(func() {
		close(r.closeChan)
	})
}

// --- roster (call within Do) ---

// Join adds a player to the roster. Re-joining with the same id is
// idempotent. Joining is refused while a game runs.
func (r *Room) Join(playerID, name string) (*models.RoomInfo, error) {
	if r.IsPlaying() {
		return nil, ErrGameInProgress
	}

	r.playerMutex.Lock()

	for _, m := range r.members {
		if m.ID == playerID {
			info := r.infoLocked(playerID)
			r.playerMutex.Unlock()
			return info, nil
		}
	}

	if len(r.members) >= r.maxPlayers {
		r.playerMutex.Unlock()
		return nil, ErrRoomFull
	}

	member := &Member{ID: playerID, Name: name, Friends: []string{}}
	r.members = append(r.members, member)
	if r.hostID == "" {
		r.hostID = playerID
	}

	info := r.infoLocked(playerID)
	payload := models.PlayerJoinedPayload{
		Player:  memberInfo(member),
		Players: r.rosterLocked(),
	}
	r.playerMutex.Unlock()

	r.broadcastJSON(network.MsgTypePlayerJoined, payload)
	return info, nil
}

// Leave removes a player. The longest-standing remaining member
// inherits the host seat. Returns true once the room is empty. A
// departure mid-game counts as an elimination so the round math stays
// sound.
func (r *Room) Leave(playerID string) (empty bool) {
	r.playerMutex.Lock()

	idx := -1
	for i, m := range r.members {
		if m.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		r.playerMutex.Unlock()
		return len(r.members) == 0
	}

	r.members = append(r.members[:idx], r.members[idx+1:]...)

	if len(r.members) == 0 {
		r.playerMutex.Unlock()
		return true
	}

	if r.hostID == playerID {
		r.hostID = r.members[0].ID
	}

	payload := models.PlayerLeftPayload{
		PlayerID: playerID,
		Players:  r.rosterLocked(),
		NewHost:  r.hostID,
	}
	r.playerMutex.Unlock()

	r.broadcastJSON(network.MsgTypePlayerLeft, payload)

	if r.coord != nil && !r.coord.Finished() {
		r.coord.HandleLeave(playerID)
		if r.coord.Finished() {
			r.FinishGame()
		}
	}
	return false
}

// UpdateConfig lets the host tune the next game. Refused mid-game.
func (r *Room) UpdateConfig(actorID string, cfg game.Config) error {
	if actorID != r.GetHostID() {
		return ErrNotHost
	}
	if r.IsPlaying() {
		return ErrGameInProgress
	}

	r.playerMutex.Lock()
	r.config = cfg
	r.playerMutex.Unlock()

	r.broadcastJSON(network.MsgTypeConfigUpdated, cfg)
	return nil
}

// AddFriend links two room members mutually and tells each of them.
func (r *Room) AddFriend(actorID, friendID string) error {
	r.playerMutex.Lock()

	actor := r.memberLocked(actorID)
	friend := r.memberLocked(friendID)
	if actor == nil || friend == nil {
		r.playerMutex.Unlock()
		return ErrPlayerNotFound
	}

	if !contains(actor.Friends, friendID) {
		actor.Friends = append(actor.Friends, friendID)
	}
	if !contains(friend.Friends, actorID) {
		friend.Friends = append(friend.Friends, actorID)
	}

	actorInfo := memberInfo(actor)
	friendInfo := memberInfo(friend)
	roster := r.rosterLocked()
	r.playerMutex.Unlock()

	r.sendJSON(actorID, network.MsgTypeFriendAdded, models.FriendAddedPayload{Friend: friendInfo})
	r.sendJSON(friendID, network.MsgTypeFriendAdded, models.FriendAddedPayload{Friend: actorInfo})
	r.broadcastJSON(network.MsgTypePlayersUpdated, roster)
	return nil
}

// HandleAction routes a game-scoped message through the current phase.
func (r *Room) HandleAction(actor state.Player, msgID uint16, data []byte) error {
	return r.machine.GetCurrentState().HandleAction(actor, msgID, data)
}

// --- state.RoomContext ---

func (r *Room) GetCode() string {
	return r.Code
}

func (r *Room) GetHostID() string {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return r.hostID
}

func (r *Room) GetMinPlayers() int {
	return r.minPlayers
}

func (r *Room) PlayerCount() int {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return len(r.members)
}

// StartGame assigns roles and flips the room into the playing phase.
// The coordinator validates the impostor range against the roster.
func (r *Room) StartGame() error {
	coord := game.NewCoordinator(r, r.rng)
	if err := coord.Start(r.Players(), r.GetConfig()); err != nil {
		return err
	}
	r.coord = coord

	if err := r.machine.ChangeState(state.NewPlayingState(r)); err != nil {
		return err
	}
	if r.mon != nil {
		r.mon.IncGamesStarted()
	}
	return nil
}

func (r *Room) Game() *game.Coordinator {
	return r.coord
}

// FinishGame records the match out of band and settles the room.
func (r *Room) FinishGame() {
	if r.coord == nil {
		return
	}

	gs := r.coord.State()
	if r.stats != nil {
		if err := r.stats.RecordMatch(r.Code, gs, r.coord.Winner()); err != nil {
			logger.Log.Warnw("failed to record match", "room", r.Code, "err", err)
		}
	}
	if r.mon != nil {
		r.mon.IncGamesFinished()
		r.mon.ObserveGameDuration(time.Since(gs.StartedAt))
	}

	if err := r.machine.ChangeState(state.NewSettlementState(r)); err != nil {
		logger.Log.Errorw("failed to settle room", "room", r.Code, "err", err)
	}
}

func (r *Room) NotifyReady(playerID string) {
	r.broadcastJSON(network.MsgTypePlayerReady, models.PlayerReadyPayload{PlayerID: playerID})
}

func (r *Room) ChangeState(newState state.State) error {
	return r.machine.ChangeState(newState)
}

// --- reads (safe from any goroutine) ---

func (r *Room) IsPlaying() bool {
	return r.machine.GetCurrentState().GetID() == "playing"
}

func (r *Room) Phase() string {
	return r.machine.GetCurrentState().GetID()
}

func (r *Room) GetConfig() game.Config {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return r.config
}

// MemberIDs returns the session ids of everyone in the room.
func (r *Room) MemberIDs() []string {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	ids := make([]string, 0, len(r.members))
	for _, m := range r.members {
		ids = append(ids, m.ID)
	}
	return ids
}

// HasMember reports whether the player is on the roster.
func (r *Room) HasMember(playerID string) bool {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return r.memberLocked(playerID) != nil
}

// Players returns the roster as the read-only references the game core
// works with.
func (r *Room) Players() []game.Player {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()

	players := make([]game.Player, 0, len(r.members))
	for _, m := range r.members {
		players = append(players, game.Player{ID: m.ID, Name: m.Name})
	}
	return players
}

// Info snapshots the room for one requester.
func (r *Room) Info(forPlayerID string) *models.RoomInfo {
	r.playerMutex.RLock()
	defer r.playerMutex.RUnlock()
	return r.infoLocked(forPlayerID)
}

func (r *Room) infoLocked(forPlayerID string) *models.RoomInfo {
	return &models.RoomInfo{
		Code:      r.Code,
		Players:   r.rosterLocked(),
		Config:    r.config,
		HostID:    r.hostID,
		IsHost:    forPlayerID == r.hostID,
		IsPlaying: r.IsPlaying(),
	}
}

func (r *Room) rosterLocked() []models.PlayerInfo {
	roster := make([]models.PlayerInfo, 0, len(r.members))
	for _, m := range r.members {
		roster = append(roster, memberInfo(m))
	}
	return roster
}

func (r *Room) memberLocked(playerID string) *Member {
	for _, m := range r.members {
		if m.ID == playerID {
			return m
		}
	}
	return nil
}

func (r *Room) IdleSince() time.Time {
	return time.Unix(0, r.lastActive.Load())
}

func memberInfo(m *Member) models.PlayerInfo {
	return models.PlayerInfo{ID: m.ID, Name: m.Name, Friends: append([]string{}, m.Friends...)}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
