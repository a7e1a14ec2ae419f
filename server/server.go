package server

import (
	"encoding/json"
	"net/http"
	netrpc "net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/palabra/impostor/broadcast"
	"github.com/palabra/impostor/config"
	"github.com/palabra/impostor/game"
	"github.com/palabra/impostor/logger"
	"github.com/palabra/impostor/models"
	"github.com/palabra/impostor/monitor"
	"github.com/palabra/impostor/network"
	"github.com/palabra/impostor/persistence"
	"github.com/palabra/impostor/room"
	gamerpc "github.com/palabra/impostor/rpc"
	"github.com/palabra/impostor/services"
	"github.com/palabra/impostor/session"
	"github.com/palabra/impostor/timer"
)

// GameServer accepts websocket connections, maps packets to room
// events, and funnels every game action through the target room's
// serialized queue.
type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	statsService   *services.StatsService
	broadcaster    broadcast.Broadcaster
	rpcServer      *gamerpc.Server
	mon            *monitor.Monitor
	timers         *timer.Manager
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	s := &GameServer{
		cfg:            cfg,
		sessionManager: session.NewManager(),
		statsService:   services.NewStatsService(db),
		mon:            monitor.NewMonitor("impostor"),
		timers:         timer.NewManager(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.roomManager = room.NewManager(cfg.Game, s.statsService, s.mon, nil)
	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)

	rpcServer, err := gamerpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer
	netrpc.Register(gamerpc.NewStats(s.statsService, s.roomManager, s.sessionManager))

	// Housekeeping: sweep rooms that emptied out or went quiet.
	ttl := time.Duration(cfg.Game.EmptyRoomTTLSeconds) * time.Second
	s.timers.Schedule(time.Minute, time.Minute, func() {
		s.roomManager.ReapStale(ttl)
	})

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.mon.StartServer(s.cfg.Server.MetricsAddress)

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.timers.Stop()
	s.rpcServer.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.mon.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.leaveRoom(sess)
		s.sessionManager.Remove(sess.GetID())
		s.mon.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
	case network.MsgTypeCreateRoom:
		s.handleCreateRoom(sess, packet)
	case network.MsgTypeJoinRoom:
		s.handleJoinRoom(sess, packet)
	case network.MsgTypeLeaveRoom:
		s.leaveRoom(sess)
	case network.MsgTypeUpdateConfig:
		s.handleUpdateConfig(sess, packet)
	case network.MsgTypeAddFriend:
		s.handleAddFriend(sess, packet)
	case network.MsgTypeStartGame,
		network.MsgTypeChatSend,
		network.MsgTypeVoteSubmit,
		network.MsgTypeWordRevealed:
		s.handleGameAction(sess, packet)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}
}

func (s *GameServer) handleCreateRoom(sess *session.Session, packet *network.Packet) {
	var req models.CreateRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil || req.Name == "" {
		s.sendError(sess, packet.MsgID, "a display name is required")
		return
	}
	if _, inRoom := s.roomManager.GetPlayerRoom(sess.GetID()); inRoom {
		s.sendError(sess, packet.MsgID, "already in a room")
		return
	}

	sess.SetName(req.Name)
	r := s.roomManager.CreateRoom(sess.GetID(), req.Name, s.broadcaster)
	sess.RoomCode = r.Code

	logger.Log.Infof("Session %s created room %s", sess.GetID(), r.Code)
	s.sendJSON(sess, network.MsgTypeRoomState, r.Info(sess.GetID()))
}

func (s *GameServer) handleJoinRoom(sess *session.Session, packet *network.Packet) {
	var req models.JoinRoomRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil || req.Name == "" {
		s.sendError(sess, packet.MsgID, "a room code and display name are required")
		return
	}

	r, exists := s.roomManager.GetRoom(req.RoomCode)
	if !exists {
		s.sendError(sess, packet.MsgID, "room not found")
		return
	}

	sess.SetName(req.Name)

	var (
		info    *models.RoomInfo
		joinErr error
	)
	if err := r.Do(func() {
		info, joinErr = r.Join(sess.GetID(), req.Name)
	}); err != nil {
		s.sendError(sess, packet.MsgID, "room not found")
		return
	}
	if joinErr != nil {
		s.sendError(sess, packet.MsgID, joinErr.Error())
		return
	}

	sess.RoomCode = r.Code
	logger.Log.Infof("%s joined room %s", req.Name, r.Code)
	s.sendJSON(sess, network.MsgTypeRoomState, info)
}

func (s *GameServer) handleUpdateConfig(sess *session.Session, packet *network.Packet) {
	var cfg game.Config
	if err := json.Unmarshal(packet.Data, &cfg); err != nil {
		s.sendError(sess, packet.MsgID, "bad config payload")
		return
	}

	r, exists := s.roomManager.GetPlayerRoom(sess.GetID())
	if !exists {
		s.sendError(sess, packet.MsgID, "not in a room")
		return
	}

	var updateErr error
	if err := r.Do(func() {
		updateErr = r.UpdateConfig(sess.GetID(), cfg)
	}); err != nil {
		updateErr = err
	}
	if updateErr != nil {
		s.sendError(sess, packet.MsgID, updateErr.Error())
	}
}

func (s *GameServer) handleAddFriend(sess *session.Session, packet *network.Packet) {
	var req models.AddFriendRequest
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, packet.MsgID, "bad friend payload")
		return
	}

	r, exists := s.roomManager.GetPlayerRoom(sess.GetID())
	if !exists {
		s.sendError(sess, packet.MsgID, "not in a room")
		return
	}

	var addErr error
	if err := r.Do(func() {
		addErr = r.AddFriend(sess.GetID(), req.FriendID)
	}); err != nil {
		addErr = err
	}
	if addErr != nil {
		s.sendError(sess, packet.MsgID, addErr.Error())
	}
}

// handleGameAction posts the packet onto the room's serialized queue
// and routes it through the room's current phase.
func (s *GameServer) handleGameAction(sess *session.Session, packet *network.Packet) {
	r, exists := s.roomManager.GetPlayerRoom(sess.GetID())
	if !exists {
		s.sendError(sess, packet.MsgID, "not in a room")
		return
	}

	var actionErr error
	if err := r.Do(func() {
		actionErr = r.HandleAction(sess, packet.MsgID, packet.Data)
	}); err != nil {
		actionErr = err
	}

	if actionErr != nil {
		s.sendError(sess, packet.MsgID, actionErr.Error())
		return
	}
	if packet.MsgID == network.MsgTypeVoteSubmit {
		s.mon.IncVotesCast()
	}
}

func (s *GameServer) leaveRoom(sess *session.Session) {
	r, exists := s.roomManager.GetPlayerRoom(sess.GetID())
	if !exists {
		return
	}

	var empty bool
	if err := r.Do(func() {
		empty = r.Leave(sess.GetID())
	}); err == nil && empty {
		s.roomManager.RemoveRoom(r.Code)
	}
	sess.RoomCode = ""
}

func (s *GameServer) sendJSON(sess *session.Session, msgID uint16, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorf("Error marshalling reply %d: %v", msgID, err)
		return
	}
	sess.Send(msgID, data)
}

func (s *GameServer) sendError(sess *session.Session, reqMsgID uint16, message string) {
	s.sendJSON(sess, network.MsgTypeError, models.ErrorPayload{
		ReqMsgID: reqMsgID,
		Message:  message,
	})
}
