// Package api exposes sessions over HTTP with gin.
package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lanewars/internal/render"
	"lanewars/internal/session"
	"lanewars/internal/units"
)

// Server holds the handler dependencies.
type Server struct {
	sessions      *session.Manager
	frameMaxWidth int
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(sessions *session.Manager, frameMaxWidth int) *gin.Engine {
	s := &Server{sessions: sessions, frameMaxWidth: frameMaxWidth}

	r := gin.Default()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/units", s.listUnits)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", s.createSession)
			sessions.GET("", s.listSessions)
			sessions.GET("/:id", s.getSession)
			sessions.DELETE("/:id", s.deleteSession)
			sessions.POST("/:id/spawn", s.spawn)
			sessions.POST("/:id/restart", s.restart)
			sessions.GET("/:id/frame.png", s.frame)
		}
	}

	r.GET("/ws/:id", s.websocket)
	return r
}

type unitView struct {
	Kind             units.Kind `json:"kind"`
	Name             string     `json:"name"`
	Cost             int        `json:"cost"`
	HP               float64    `json:"hp"`
	Damage           float64    `json:"damage"`
	Speed            float64    `json:"speed"`
	Range            float64    `json:"range"`
	AttackCooldownMS int64      `json:"attack_cooldown_ms"`
	Ranged           bool       `json:"ranged"`
	XPReward         int        `json:"xp_reward"`
	Size             float64    `json:"size"`
	Color            string     `json:"color"`
}

func (s *Server) listUnits(c *gin.Context) {
	all := units.All()
	out := make([]unitView, 0, len(all))
	for _, a := range all {
		out = append(out, unitView{
			Kind:             a.Kind,
			Name:             a.Name,
			Cost:             a.Cost,
			HP:               a.HP,
			Damage:           a.Damage,
			Speed:            a.Speed,
			Range:            a.Range,
			AttackCooldownMS: a.AttackCooldown.Milliseconds(),
			Ranged:           a.Ranged,
			XPReward:         a.XPReward,
			Size:             a.Size,
			Color:            a.Color,
		})
	}
	c.JSON(http.StatusOK, gin.H{"units": out})
}

func (s *Server) createSession(c *gin.Context) {
	sess, err := s.sessions.Create()
	if errors.Is(err, session.ErrTooManySessions) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("[API] create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": sess.ID})
}

func (s *Server) listSessions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": s.sessions.List()})
}

// lookup resolves the :id parameter, answering 404 itself when it is unknown.
func (s *Server) lookup(c *gin.Context) (*session.Session, bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}

func (s *Server) getSession(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.Snapshot())
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.sessions.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) spawn(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	var req struct {
		Kind string `json:"kind" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind, err := units.ParseKind(req.Kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	spawned, err := sess.Spawn(kind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": spawned, "kind": kind})
}

func (s *Server) restart(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	sess.Restart()
	c.Status(http.StatusNoContent)
}

func (s *Server) frame(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	width := 0
	if v := c.Query("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > s.frameMaxWidth {
			c.JSON(http.StatusBadRequest, gin.H{"error": "width must be between 1 and " + strconv.Itoa(s.frameMaxWidth)})
			return
		}
		width = n
	}

	img := render.Scale(render.Frame(sess.Snapshot()), width)
	buf, err := render.EncodePNG(img)
	if err != nil {
		log.Printf("[API] frame %s: %v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode image"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf)
}

func (s *Server) websocket(c *gin.Context) {
	sess, ok := s.lookup(c)
	if !ok {
		return
	}
	sess.ServeWS(c.Writer, c.Request)
}
