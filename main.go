package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v9"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/akarpov/ai-relay/pkg/api/handler"
	"github.com/akarpov/ai-relay/pkg/api/middleware"
	"github.com/akarpov/ai-relay/pkg/logger"
	"github.com/akarpov/ai-relay/pkg/openai"
	"github.com/akarpov/ai-relay/pkg/service"
	"github.com/akarpov/ai-relay/pkg/speech"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3000"`
	OpenAIToken  string `env:"OPENAI_API_KEY,required"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	SpeechKey    string `env:"SPEECH_KEY,required"`
	SpeechRegion string `env:"SPEECH_REGION,required"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	serviceGroup, err := setupServices()
	if err != nil {
		return err
	}

	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return serviceGroup.Run(ctx)
}

func setupServices() (service.Group, error) {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	openAIClient, err := openai.NewClient(cfg.OpenAIToken, cfg.OpenAIModel)
	if err != nil {
		return nil, fmt.Errorf("creating open ai client: %w", err)
	}

	speechClient, err := speech.NewClient(cfg.SpeechKey, cfg.SpeechRegion)
	if err != nil {
		return nil, fmt.Errorf("creating speech client: %w", err)
	}

	router := newRouter(openAIClient, openAIClient, speechClient)

	return service.Group{
		service.NewHTTPServer(fmt.Sprintf(":%d", cfg.Port), router),
	}, nil
}

func newRouter(
	completer handler.ChatCompleter,
	images handler.ImageGenerator,
	synthesizer handler.SpeechSynthesizer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)

	rootHandler := handler.NewRoot()
	completionHandler := handler.NewCompletion(completer, images)
	ttsHandler := handler.NewTTS(synthesizer)

	r.Get("/", rootHandler.Identify)
	r.Post("/api/completion", completionHandler.Generate)
	r.Post("/api/tts", ttsHandler.Synthesize)

	// All origins with credentials, preflight answered 200 with an
	// empty body and cacheable for 24 hours.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost,
			http.MethodPut, http.MethodPatch, http.MethodDelete,
		},
		AllowedHeaders:       []string{"*"},
		AllowCredentials:     true,
		MaxAge:               86400,
		OptionsSuccessStatus: http.StatusOK,
	})

	return c.Handler(r)
}
