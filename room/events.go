package room

import (
	"encoding/json"

	"github.com/palabra/impostor/game"
	"github.com/palabra/impostor/logger"
	"github.com/palabra/impostor/models"
	"github.com/palabra/impostor/network"
)

// Room implements game.Events: the coordinator's outbound boundary.
// Everything here broadcasts to the room except WordAssignment, which
// is strictly per-player.

func (r *Room) WordAssignment(playerID string, assignment game.Assignment, order []game.Player, current game.Player) {
	r.sendJSON(playerID, network.MsgTypeWordAssignment, models.WordAssignmentPayload{
		Assignment:  assignment,
		TurnOrder:   order,
		CurrentTurn: current,
	})
}

func (r *Room) TurnChanged(current game.Player) {
	r.broadcastJSON(network.MsgTypeTurnChanged, models.TurnChangedPayload{CurrentTurn: current})
}

func (r *Room) ChatMessage(msg game.ChatMessage) {
	if r.mon != nil {
		r.mon.IncChatMessages()
	}
	r.broadcastJSON(network.MsgTypeChatMessage, models.ChatMessagePayload{
		PlayerID:   msg.PlayerID,
		PlayerName: msg.PlayerName,
		Text:       msg.Text,
		Timestamp:  msg.Timestamp.UnixMilli(),
	})
}

func (r *Room) VotingStarted(eligible []game.Player) {
	r.broadcastJSON(network.MsgTypeVotingStart, models.VotingStartPayload{Eligible: eligible})
}

func (r *Room) VotingTieBreak(tied []game.Player) {
	r.broadcastJSON(network.MsgTypeVotingTiebreak, models.VotingTiebreakPayload{Tied: tied})
}

func (r *Room) PlayerEliminated(p game.Player, wasImpostor bool) {
	r.broadcastJSON(network.MsgTypePlayerEliminated, models.PlayerEliminatedPayload{
		Player:      p,
		WasImpostor: wasImpostor,
	})
}

func (r *Room) GameOver(winner game.Winner, word string, reason string) {
	r.broadcastJSON(network.MsgTypeGameOver, models.GameOverPayload{
		Winner: string(winner),
		Word:   word,
		Reason: reason,
	})
}

func (r *Room) broadcastJSON(msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorw("failed to marshal broadcast", "room", r.Code, "msgID", msgID, "err", err)
		return
	}
	if err := r.broadcaster.BroadcastToRoom(r.Code, msgID, data); err != nil {
		logger.Log.Warnw("broadcast failed", "room", r.Code, "msgID", msgID, "err", err)
	}
}

func (r *Room) sendJSON(sessionID string, msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorw("failed to marshal message", "room", r.Code, "msgID", msgID, "err", err)
		return
	}
	if err := r.broadcaster.SendToSession(sessionID, msgID, data); err != nil {
		logger.Log.Warnw("send failed", "room", r.Code, "session", sessionID, "msgID", msgID, "err", err)
	}
}
