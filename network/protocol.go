package network

// Message IDs. 1xx are room directory requests, 2xx in-game requests,
// 3xx server pushes, 4xx errors.
const (
	MsgTypeHeartbeat = 1

	MsgTypeCreateRoom   = 101
	MsgTypeJoinRoom     = 102
	MsgTypeLeaveRoom    = 103
	MsgTypeUpdateConfig = 104
	MsgTypeAddFriend    = 105

	MsgTypeStartGame    = 201
	MsgTypeChatSend     = 202
	MsgTypeVoteSubmit   = 203
	MsgTypeWordRevealed = 204

	MsgTypeRoomState        = 301
	MsgTypePlayerJoined     = 302
	MsgTypePlayerLeft       = 303
	MsgTypePlayersUpdated   = 304
	MsgTypeConfigUpdated    = 305
	MsgTypeFriendAdded      = 306
	MsgTypeWordAssignment   = 310
	MsgTypeTurnChanged      = 311
	MsgTypeChatMessage      = 312
	MsgTypeVotingStart      = 313
	MsgTypeVotingTiebreak   = 314
	MsgTypePlayerEliminated = 315
	MsgTypeGameOver         = 316
	MsgTypePlayerReady      = 317

	MsgTypeError = 400
)
