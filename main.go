package main

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"time"

	"converse-backend/internal/config"
	"converse-backend/internal/domain/entities"
	Iservices "converse-backend/internal/domain/interfaces/services"
	"converse-backend/internal/infra/handlers"
	"converse-backend/internal/infra/logger"
	"converse-backend/internal/infra/provider"
	"converse-backend/internal/infra/repository"
	"converse-backend/internal/infra/routes"
	"converse-backend/internal/infra/services"
	"converse-backend/internal/middleware"

	"github.com/gorilla/mux"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.LogLevel, cfg.LogJSON)

	tmpl, err := template.ParseFiles(cfg.TemplatePath)
	if err != nil {
		log.Fatal(fmt.Sprintf("Failed to parse landing page template: %v", err))
	}

	settingsStore := repository.NewSettingsStore(entities.DefaultSettings())
	conversationStore := repository.NewConversationStore()

	completionProvider := provider.NewGroqProvider(log, cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.UpstreamTimeout)
	speechProvider := provider.NewGTTSProvider(log, cfg.SpeechBaseURL, cfg.UpstreamTimeout)

	var chatService Iservices.IChatService = services.NewChatService(
		log, settingsStore, conversationStore, completionProvider, speechProvider, cfg.Model)

	sessionScoped := cfg.ConversationScope == config.ScopeSession

	httpHandlers := handlers.NewHttpHandlers(log, chatService, settingsStore, conversationStore, sessionScoped, tmpl)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	routes := routes.NewRoutes(router, httpHandlers)
	routes.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sessionScoped {
		go evictionLoop(ctx, log, conversationStore, cfg.EvictionInterval, cfg.SessionTTL)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s in %s scope", cfg.Port, cfg.ConversationScope))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}

func evictionLoop(ctx context.Context, log *logger.Logger, store *repository.ConversationStore, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.EvictIdle(ttl); n > 0 {
				log.Info(fmt.Sprintf("Evicted %d idle sessions", n))
			}
		}
	}
}
