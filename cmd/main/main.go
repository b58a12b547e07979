package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/RichardKnop/ragproxy"
	"github.com/RichardKnop/ragproxy/adapter/filestorage"
	googlegenai "github.com/RichardKnop/ragproxy/adapter/google-genai"
	"github.com/RichardKnop/ragproxy/adapter/rest"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local development keeps the API key in a .env file.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("http.host", "localhost")
	viper.SetDefault("http.port", "9020")
	viper.SetDefault("genai.model", "models/gemini-2.5-flash")
	viper.SetDefault("genai.max_chunks", 16)
	viper.SetDefault("genai.temperature", 0.3)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatal("fatal error config file: ", err)
		}
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_AI_API_KEY")
	}
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("zap logger: ", err)
	}
	defer logger.Sync()

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Fatal("genai client: ", err)
	}

	backend := googlegenai.New(
		genaiClient,
		apiKey,
		googlegenai.WithModel(viper.GetString("genai.model")),
		googlegenai.WithLogger(logger),
	)

	storage, err := filestorage.New(
		filestorage.WithLogger(logger),
	)
	if err != nil {
		log.Fatal("filestorage adapter: ", err)
	}

	var (
		rp = ragproxy.New(
			backend,
			storage,
			ragproxy.WithDefaultStore(os.Getenv("FILE_SEARCH_STORE_ID")),
			ragproxy.WithMaxChunks(viper.GetInt("genai.max_chunks")),
			ragproxy.WithTemperature(viper.GetFloat64("genai.temperature")),
		)
		restAdapter = rest.New(rp)
		address     = viper.GetString("http.host") + ":" + viper.GetString("http.port")
	)

	httpServer := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		Addr:              address,
		Handler:           restAdapter.Handler(),
	}

	log.Println("listening on", address)

	go func() {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
		log.Println("Stopped serving new connections.")
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("HTTP shutdown error: %v", err)
	}
	log.Println("Graceful shutdown complete.")
}
