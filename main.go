package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/rs/cors"

	"pingrelay/auth"
	"pingrelay/blacklist"
	"pingrelay/config"
	"pingrelay/handlers"
	"pingrelay/pings"
	"pingrelay/session"
)

func main() {
	cfg := config.Load()

	store, closeStore := newBlacklistStore(cfg)
	defer closeStore()

	bl, err := blacklist.New(store)
	if err != nil {
		log.Fatalf("Error loading blacklist: %v", err)
	}

	sessions := session.NewStore()
	registry := pings.NewRegistry()
	authn := auth.New(sessions, bl, cfg.UserPassword, cfg.AdminPassword)

	// Expired pings are removed by a background sweep, not per request.
	stopSweeper := registry.StartSweeper(config.SweepInterval)
	defer stopSweeper()

	env := &handlers.Env{Auth: authn, Pings: registry, Blacklist: bl}
	handler := cors.AllowAll().Handler(handlers.NewMux(env))

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: handler}

	go func() {
		log.Printf("Starting server on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// newBlacklistStore picks the durable backend: Postgres when
// DB_CONNECTION is set, a local JSON file otherwise.
func newBlacklistStore(cfg *config.Config) (blacklist.Store, func()) {
	if cfg.DBConnection != "" {
		pg, err := blacklist.NewPostgresStore(cfg.DBConnection)
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
		log.Println("Blacklist backed by Postgres")
		return pg, func() { pg.Close() }
	}
	log.Printf("Blacklist backed by file %s", cfg.BlacklistFile)
	return blacklist.NewFileStore(cfg.BlacklistFile), func() {}
}
