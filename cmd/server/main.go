package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lanewars/internal/api"
	"lanewars/internal/battle"
	"lanewars/internal/config"
	"lanewars/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	var opts []battle.Option
	if cfg.MatchSeed != 0 {
		opts = append(opts, battle.WithSeed(cfg.MatchSeed))
	}
	sessions := session.NewManager(cfg.MaxSessions, cfg.TickRate, opts...)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(sessions, cfg.FrameMaxWidth),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Println("Server starting on port " + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe: ", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	sessions.Close()
}
