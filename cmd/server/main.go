package main

import (
	"context"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"familyboard/config"
	"familyboard/handlers"
	"familyboard/internal/localstore"
	"familyboard/services/auth"
	"familyboard/services/calendar"
	"familyboard/services/weather"
	"familyboard/utils"
)

func main() {
	var (
		listenAddr = flag.String("listen", ":8090", "HTTP listen address")
		dbPath     = flag.String("db", "data/familyboard.db", "Path to the local store database")
		avatarsDir = flag.String("avatars", "data/avatars", "Directory with avatar images")
		logPath    = flag.String("log", "", "Log file path (stderr when empty, rotated when set)")
	)
	flag.Parse()

	if *logPath != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   *logPath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
		}))
	}

	store, err := localstore.NewStore(localstore.Config{DatabasePath: *dbPath})
	if err != nil {
		log.Fatalf("[server] open local store: %v", err)
	}
	defer store.Close()

	configManager := config.NewManager(store)
	authService := auth.NewService(store, configManager)
	calendarService := calendar.NewService(calendar.NewClient())
	weatherClient := weather.NewClient()

	authHandler := handlers.NewAuthHandler(authService)
	eventsHandler := handlers.NewEventsHandler(configManager, authService, calendarService)
	configHandler := handlers.NewConfigHandler(configManager)
	weatherHandler := handlers.NewWeatherHandler(weatherClient)
	timeHandler := handlers.NewTimeHandler()
	avatarsHandler := handlers.NewAvatarsHandler(*avatarsDir)

	router := utils.NewRouter()
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/callback", authHandler.Callback).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/status", authHandler.Status).Methods(http.MethodGet)
	router.HandleFunc("/api/events", eventsHandler.Day).Methods(http.MethodGet)
	router.HandleFunc("/api/config", configHandler.Get).Methods(http.MethodGet)
	router.HandleFunc("/api/config", configHandler.Update).Methods(http.MethodPut)
	router.HandleFunc("/api/weather", weatherHandler.Forecast).Methods(http.MethodGet)
	router.HandleFunc("/api/time", timeHandler.Now).Methods(http.MethodGet)
	router.PathPrefix("/avatars/").Handler(avatarsHandler.Handler()).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    *listenAddr,
		Handler: router,
	}

	// Shut down cleanly on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		log.Printf("[server] signal %s received, shutting down", sig)
		cancel()
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("[server] shutdown: %v", err)
		}
	}()

	log.Printf("[server] family board listening on %s", *listenAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("[server] listen: %v", err)
	}
	log.Printf("[server] exited")
}
