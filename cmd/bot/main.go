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

	"github.com/joho/godotenv"

	"github.com/respondentai/backend/internal/config"
	"github.com/respondentai/backend/internal/handler"
	"github.com/respondentai/backend/internal/model/persona"
	dialogservice "github.com/respondentai/backend/internal/service/dialog"
	"github.com/respondentai/backend/internal/service/llm"
	"github.com/respondentai/backend/internal/service/session"
	"github.com/respondentai/backend/internal/service/transcript"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	catalog, err := persona.Load(cfg.Personas.DefaultPath, cfg.Personas.LibraryPath)
	if err != nil {
		log.Fatalf("failed to load persona catalog: %v", err)
	}
	log.Printf("persona catalog loaded: %d selectable personas", len(catalog.List()))

	chatModel, err := cfg.LLM.NewChatModel(ctx)
	if err != nil {
		log.Fatalf("failed to create chat model: %v", err)
	}
	completer := llm.New(chatModel, cfg.LLM.Timeout)

	transcripts, err := transcript.NewFileLogger(cfg.Transcript.Dir)
	if err != nil {
		log.Fatalf("failed to prepare transcript directory: %v", err)
	}

	sessions := session.NewStore(catalog.Default().Prompt, cfg.Dialog.HistoryLimit)
	dialogSvc := dialogservice.NewService(catalog, sessions, completer, transcripts)

	router := handler.NewRouter(catalog, sessions, dialogSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Virtual Respondent backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
