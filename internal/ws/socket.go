package ws

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/zerolog/log"

	"github.com/aioreal/backend/internal/config"
	"github.com/aioreal/backend/internal/game"
)

type ConnCtx struct {
	SessionID string
}

// Server drives the live game loop over Socket.IO. Each connection owns at
// most one session; the engine pushes countdown ticks, timer ticks, round
// reveals and the final summary back through the connection's emitter.
type Server struct {
	Manager *game.Manager
	config  config.Config
}

func New(manager *game.Manager, cfg config.Config) *Server {
	return &Server{Manager: manager, config: cfg}
}

// Mount attaches the Socket.IO server with handlers to the given Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext(&ConnCtx{})
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	// game:start — register the player and begin preloading
	io.OnEvent("/", "game:start", func(s socketio.Conn, payload struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)

		sess, err := srv.Manager.Get(ctx.SessionID)
		if err != nil {
			sess = srv.Manager.Create(srv.emitter(s))
			ctx.SessionID = sess.ID
		}

		if err := sess.Start(context.Background(), payload.Name, payload.Country); err != nil {
			switch err {
			case game.ErrEmptyUsername:
				return srv.err(s, "empty_username", "Enter a name to play")
			case game.ErrInvalidPhase:
				return srv.err(s, "invalid_phase", "Game already in progress")
			default:
				log.Error().Err(err).Str("session", sess.ID).Msg("game:start failed")
				return srv.err(s, "pool_unavailable", "Could not load images, try again")
			}
		}
		log.Info().Str("sid", s.ID()).Str("session", sess.ID).Str("player", payload.Name).Msg("game:start")
		return map[string]any{"sessionId": sess.ID}
	})

	// game:ready — client finished preloading assets
	io.OnEvent("/", "game:ready", func(s socketio.Conn) map[string]any {
		ctx := s.Context().(*ConnCtx)
		sess, err := srv.Manager.Get(ctx.SessionID)
		if err != nil {
			return srv.err(s, "session_not_found", "Session not found")
		}
		if err := sess.Ready(); err != nil {
			return srv.err(s, "invalid_phase", err.Error())
		}
		log.Info().Str("session", sess.ID).Msg("game:ready")
		return map[string]any{"ok": true}
	})

	// game:answer — the player's call for the current image
	io.OnEvent("/", "game:answer", func(s socketio.Conn, payload struct {
		IsAI bool `json:"isAi"`
	}) map[string]any {
		ctx := s.Context().(*ConnCtx)
		sess, err := srv.Manager.Get(ctx.SessionID)
		if err != nil {
			return srv.err(s, "session_not_found", "Session not found")
		}
		if err := sess.Answer(payload.IsAI); err != nil {
			return srv.err(s, "invalid_phase", err.Error())
		}
		return map[string]any{"ok": true}
	})

	// game:again — tear down and return to registration
	io.OnEvent("/", "game:again", func(s socketio.Conn) map[string]any {
		ctx := s.Context().(*ConnCtx)
		sess, err := srv.Manager.Get(ctx.SessionID)
		if err != nil {
			return srv.err(s, "session_not_found", "Session not found")
		}
		sess.Reset()
		log.Info().Str("session", sess.ID).Msg("game:again")
		return map[string]any{"ok": true}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		if ctx, ok := s.Context().(*ConnCtx); ok && ctx.SessionID != "" {
			srv.Manager.Remove(ctx.SessionID)
		}
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))

	// Basic CORS preflight for Socket.IO POST
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

// emitter binds a session's event stream to one connection, with a results
// export hook once the final rank is known.
func (srv *Server) emitter(s socketio.Conn) game.Emitter {
	return func(event string, payload any) {
		s.Emit(event, payload)
		if event == "game:rank" && srv.config.ExportEnabled {
			ctx, ok := s.Context().(*ConnCtx)
			if !ok || ctx.SessionID == "" {
				return
			}
			sess, err := srv.Manager.Get(ctx.SessionID)
			if err != nil {
				return
			}
			if exportErr := game.ExportSession(sess, srv.config.ExportFile); exportErr != nil {
				log.Error().Err(exportErr).Str("session", sess.ID).Msg("failed to export results")
			}
		}
	}
}

func (srv *Server) err(s socketio.Conn, code, message string) map[string]any {
	s.Emit("error", map[string]any{"code": code, "message": message})
	return map[string]any{"error": message}
}
