package rpc

import (
	"net"
	"net/rpc"
	"time"

	"github.com/palabra/impostor/logger"
	"github.com/palabra/impostor/models"
	"github.com/palabra/impostor/room"
	"github.com/palabra/impostor/services"
	"github.com/palabra/impostor/session"
)

// Server manages the RPC listener for the ops surface.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// Stats exposes player statistics and server counts over net/rpc.
// Methods follow the net/rpc signature rules: exported args struct,
// pointer reply, error return.
type Stats struct {
	stats    *services.StatsService
	rooms    *room.Manager
	sessions *session.Manager
	started  time.Time
}

func NewStats(stats *services.StatsService, rooms *room.Manager, sessions *session.Manager) *Stats {
	return &Stats{
		stats:    stats,
		rooms:    rooms,
		sessions: sessions,
		started:  time.Now(),
	}
}

type PlayerStatsArgs struct {
	PlayerName string
}

type PlayerStatsReply struct {
	Stats *models.PlayerStats
}

func (s *Stats) PlayerStats(args *PlayerStatsArgs, reply *PlayerStatsReply) error {
	stats, err := s.stats.PlayerStats(args.PlayerName)
	if err != nil {
		return err
	}
	reply.Stats = stats
	return nil
}

type LeaderboardArgs struct {
	Limit int
}

type LeaderboardReply struct {
	Entries []models.PlayerStats
}

func (s *Stats) Leaderboard(args *LeaderboardArgs, reply *LeaderboardReply) error {
	entries, err := s.stats.Leaderboard(args.Limit)
	if err != nil {
		return err
	}
	reply.Entries = entries
	return nil
}

type ServerInfoArgs struct{}

type ServerInfoReply struct {
	Rooms         int
	Sessions      int
	UptimeSeconds int64
}

func (s *Stats) ServerInfo(args *ServerInfoArgs, reply *ServerInfoReply) error {
	reply.Rooms = s.rooms.Count()
	reply.Sessions = s.sessions.Count()
	reply.UptimeSeconds = int64(time.Since(s.started).Seconds())
	return nil
}
