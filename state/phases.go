package state

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/palabra/impostor/game"
	"github.com/palabra/impostor/logger"
	"github.com/palabra/impostor/models"
	"github.com/palabra/impostor/network"
)

var (
	ErrActionNotAllowed = errors.New("action not allowed in this phase")
	ErrNotHost          = errors.New("only the host can start the game")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
	ErrChatTooLong      = errors.New("chat message too long")
)

// maxChatBytes caps a relayed clue. Frames carry a 16-bit payload
// length, so user text must stay well below that limit after the JSON
// envelope is added.
const maxChatBytes = 512

// LobbyState is the pre-game phase: the roster can change and the host
// can launch the game.
type LobbyState struct {
	RoomStateBase
}

func NewLobbyState(room RoomContext) *LobbyState {
	return &LobbyState{
		RoomStateBase: RoomStateBase{ID: "lobby", Room: room},
	}
}

func (s *LobbyState) HandleAction(actor Player, msgID uint16, data []byte) error {
	switch msgID {
	case network.MsgTypeStartGame:
		return startGame(s.Room, actor)
	default:
		return ErrActionNotAllowed
	}
}

// startGame gates the launch on host identity and minimum headcount;
// impostor-count validation lives in the game coordinator.
func startGame(room RoomContext, actor Player) error {
	if actor.GetID() != room.GetHostID() {
		return ErrNotHost
	}
	if room.PlayerCount() < room.GetMinPlayers() {
		return ErrNotEnoughPlayers
	}
	return room.StartGame()
}

// PlayingState routes chat and vote submissions into the game
// coordinator and settles the room once a winner is declared.
type PlayingState struct {
	RoomStateBase
}

func NewPlayingState(room RoomContext) *PlayingState {
	return &PlayingState{
		RoomStateBase: RoomStateBase{ID: "playing", Room: room},
	}
}

func (s *PlayingState) OnEnter() {
	logger.Log.Infow("game started", "room", s.Room.GetCode())
}

func (s *PlayingState) HandleAction(actor Player, msgID uint16, data []byte) error {
	switch msgID {
	case network.MsgTypeChatSend:
		var req models.ChatSendRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("bad chat payload: %w", err)
		}
		if len(req.Text) > maxChatBytes {
			return ErrChatTooLong
		}
		return s.Room.Game().HandleChat(actor.GetID(), req.Text)

	case network.MsgTypeVoteSubmit:
		var req models.VoteSubmitRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return fmt.Errorf("bad vote payload: %w", err)
		}
		target := game.PlayerTarget(req.TargetID)
		if req.TargetID == models.VoteTargetSkip {
			target = game.SkipTarget()
		}
		if err := s.Room.Game().HandleVote(actor.GetID(), target); err != nil {
			return err
		}
		if s.Room.Game().Finished() {
			s.Room.FinishGame()
		}
		return nil

	case network.MsgTypeWordRevealed:
		s.Room.NotifyReady(actor.GetID())
		return nil

	default:
		return ErrActionNotAllowed
	}
}

// SettlementState is the post-game phase: the result stands, and the
// host can launch a rematch with the same roster.
type SettlementState struct {
	RoomStateBase
}

func NewSettlementState(room RoomContext) *SettlementState {
	return &SettlementState{
		RoomStateBase: RoomStateBase{ID: "settlement", Room: room},
	}
}

func (s *SettlementState) OnEnter() {
	logger.Log.Infow("game settled", "room", s.Room.GetCode())
}

func (s *SettlementState) HandleAction(actor Player, msgID uint16, data []byte) error {
	switch msgID {
	case network.MsgTypeStartGame:
		return startGame(s.Room, actor)
	default:
		return ErrActionNotAllowed
	}
}
