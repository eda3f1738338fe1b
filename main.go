package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"aviatickets/internal/config"
	api "aviatickets/internal/http"
	"aviatickets/internal/provider"
	"aviatickets/internal/repositories"

	"github.com/gin-gonic/gin"
)

func main() {
	env := config.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	// MySQL is preferred but optional: without it bookings are kept in
	// memory so the local-fallback path keeps working end to end.
	var store repositories.BookingStore
	if db := config.ConnectDB(env); db != nil {
		store = repositories.NewMySQLBookingStore(db)
	} else {
		store = repositories.NewMemoryBookingStore()
	}
	defer config.CloseDB()
	log.Printf("booking store backend: %s", store.Name())

	gateway := provider.New(env)

	r := api.NewRouter(env, store, gateway)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped.")
}
