// Package server streams composed frames over HTTP and websockets.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"SWR/internal/log"
	"SWR/internal/swr"
)

// Options configures the server.
type Options struct {
	// FPS paces the websocket stream.
	FPS int
	// DisplayFrames is the loop length served by /api/frames and /ws/frames.
	DisplayFrames int
	// Animation produces the encoded GIF on first request.
	Animation func() ([]byte, error)
}

// Server serves a warmed-up compositor. Every handler only reads frozen
// state, so requests run concurrently without locking.
type Server struct {
	app  *fiber.App
	comp *swr.Compositor
	opts Options

	gifOnce sync.Once
	gif     []byte
	gifErr  error
}

type panelInfo struct {
	ID    int      `json:"id"`
	VSWR  swr.VSWR `json:"vswr"`
	Gamma float64  `json:"gamma"`
}

// New warms c up if needed and wires the routes.
func New(c *swr.Compositor, opts Options) (*Server, error) {
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %d", swr.ErrInvalidParameter, opts.FPS)
	}
	if opts.DisplayFrames <= 0 {
		return nil, fmt.Errorf("%w: display frames must be positive, got %d", swr.ErrInvalidParameter, opts.DisplayFrames)
	}
	if !c.Frozen() {
		if err := c.Warmup(); err != nil {
			return nil, err
		}
	}
	s := &Server{comp: c, opts: opts}

	app := fiber.New(fiber.Config{
		AppName:               "SWR",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/config", s.handleConfig)
	api.Get("/frames/:index", s.handleFrame)
	app.Get("/animation.gif", s.handleAnimation)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/frames", websocket.New(s.handleFramesWS))

	s.app = app
	return s, nil
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen blocks serving addr until Shutdown.
func (s *Server) Listen(addr string) error {
	log.Info("serving frames", "addr", addr, "frames", s.opts.DisplayFrames, "fps", s.opts.FPS)
	return s.app.Listen(addr)
}

// Shutdown stops the listener and closes open connections.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleConfig(c *fiber.Ctx) error {
	panels := s.comp.Panels()
	infos := make([]panelInfo, len(panels))
	for i, p := range panels {
		infos[i] = panelInfo{ID: p.ID, VSWR: p.VSWR, Gamma: p.Gamma}
	}
	return c.JSON(fiber.Map{
		"run":            log.RunID(),
		"config":         s.comp.Config(),
		"panels":         infos,
		"positions":      s.comp.Grid().Positions(),
		"display_frames": s.opts.DisplayFrames,
		"fps":            s.opts.FPS,
	})
}

func (s *Server) handleFrame(c *fiber.Ctx) error {
	j, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "frame index must be an integer")
	}
	if j < 0 || j >= s.opts.DisplayFrames {
		return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("frame %d outside [0, %d)", j, s.opts.DisplayFrames))
	}
	f, err := s.comp.FrameAt(j)
	if err != nil {
		return err
	}
	return c.JSON(f)
}

func (s *Server) handleAnimation(c *fiber.Ctx) error {
	if s.opts.Animation == nil {
		return fiber.ErrNotFound
	}
	s.gifOnce.Do(func() {
		start := time.Now()
		s.gif, s.gifErr = s.opts.Animation()
		log.Info("rendered animation", "bytes", len(s.gif), "took", time.Since(start))
	})
	if s.gifErr != nil {
		return s.gifErr
	}
	c.Type("gif")
	return c.Send(s.gif)
}

// handleFramesWS loops the display frames at the configured rate until the
// client goes away.
func (s *Server) handleFramesWS(conn *websocket.Conn) {
	remote := conn.RemoteAddr().String()
	log.Info("frame stream opened", "remote", remote)
	defer log.Info("frame stream closed", "remote", remote)

	ticker := time.NewTicker(time.Second / time.Duration(s.opts.FPS))
	defer ticker.Stop()
	for j := 0; ; j = (j + 1) % s.opts.DisplayFrames {
		f, err := s.comp.FrameAt(j)
		if err != nil {
			log.Error("frame stream", "err", err)
			return
		}
		if err := conn.WriteJSON(f); err != nil {
			log.Debug("frame stream write", "err", err)
			return
		}
		<-ticker.C
	}
}
