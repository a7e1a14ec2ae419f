package models

import (
	"github.com/palabra/impostor/game"
)

// VoteTargetSkip is the wire sentinel for voting to eliminate nobody.
const VoteTargetSkip = "skip"

// PlayerInfo is the roster entry the directory shares with the room.
type PlayerInfo struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Friends []string `json:"friends"`
}

// RoomInfo is the reply to create-room and join-room.
type RoomInfo struct {
	Code      string       `json:"code"`
	Players   []PlayerInfo `json:"players"`
	Config    game.Config  `json:"config"`
	HostID    string       `json:"hostId"`
	IsHost    bool         `json:"isHost"`
	IsPlaying bool         `json:"isPlaying"`
}

// --- inbound requests ---

type CreateRoomRequest struct {
	Name string `json:"name"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
}

type AddFriendRequest struct {
	FriendID string `json:"friendId"`
}

type ChatSendRequest struct {
	Text string `json:"text"`
}

type VoteSubmitRequest struct {
	// TargetID is a player id or the skip sentinel.
	TargetID string `json:"targetId"`
}

// --- outbound pushes ---

type PlayerJoinedPayload struct {
	Player  PlayerInfo   `json:"player"`
	Players []PlayerInfo `json:"players"`
}

type PlayerLeftPayload struct {
	PlayerID string       `json:"playerId"`
	Players  []PlayerInfo `json:"players"`
	NewHost  string       `json:"newHost"`
}

type FriendAddedPayload struct {
	Friend PlayerInfo `json:"friend"`
}

// WordAssignmentPayload is unicast to each player at game start. It is
// the only message carrying a player's secret.
type WordAssignmentPayload struct {
	Assignment  game.Assignment `json:"assignment"`
	TurnOrder   []game.Player   `json:"turnOrder"`
	CurrentTurn game.Player     `json:"currentTurn"`
}

type TurnChangedPayload struct {
	CurrentTurn game.Player `json:"currentTurn"`
}

type ChatMessagePayload struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"` // unix milliseconds
}

type VotingStartPayload struct {
	Eligible []game.Player `json:"eligible"`
}

type VotingTiebreakPayload struct {
	Tied []game.Player `json:"tied"`
}

type PlayerEliminatedPayload struct {
	Player      game.Player `json:"player"`
	WasImpostor bool        `json:"wasImpostor"`
}

type GameOverPayload struct {
	Winner string `json:"winner"`
	Word   string `json:"word"`
	Reason string `json:"reason"`
}

type PlayerReadyPayload struct {
	PlayerID string `json:"playerId"`
}

// ErrorPayload answers the single requesting session when an action is
// rejected; ReqMsgID names the request that failed.
type ErrorPayload struct {
	ReqMsgID uint16 `json:"reqMsgId"`
	Message  string `json:"message"`
}
