package state

import "github.com/palabra/impostor/game"

// Player is the minimal actor view a phase state needs.
type Player interface {
	GetID() string
	GetName() string
}

// RoomContext is what a room must expose to be driven by the phase
// machine. Defined here to break the import cycle between room and
// state.
type RoomContext interface {
	GetCode() string
	GetHostID() string
	GetMinPlayers() int
	PlayerCount() int
	StartGame() error
	Game() *game.Coordinator
	FinishGame()
	NotifyReady(playerID string)
	ChangeState(newState State) error
}
