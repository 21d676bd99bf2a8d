package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"growthlog/internal/db"
	"growthlog/internal/handlers"
	"growthlog/internal/notify"
	"growthlog/internal/reflection"
	"growthlog/internal/tts"
)

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	port := getenv("PORT", "8080")
	audioDir := getenv("AUDIO_DIR", "static/audio")
	ttsEndpoint := getenv("TTS_ENDPOINT", tts.DefaultEndpoint)
	secureCookie := getenv("COOKIE_SECURE", "false") == "true"

	tokenMinutes, err := strconv.Atoi(getenv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil || tokenMinutes <= 0 {
		logger.Fatal("invalid ACCESS_TOKEN_EXPIRE_MINUTES")
	}
	tokenTTL := time.Duration(tokenMinutes) * time.Minute

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.Error(err))
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		logger.Fatal("failed to ping db", zap.Error(err))
	}
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}

	hub := notify.NewHub(logger)
	generator := reflection.NewGenerator(
		reflection.NewStore(dbConn),
		tts.NewHTTPSynthesizer(ttsEndpoint),
		hub,
		audioDir,
		logger,
	)
	jobs := reflection.NewJobs(generator, logger)

	router := handlers.NewRouter(handlers.RouterConfig{
		DB:           dbConn,
		JWTSecret:    []byte(jwtSecret),
		TokenTTL:     tokenTTL,
		SecureCookie: secureCookie,
		Hub:          hub,
		Jobs:         jobs,
		AudioDir:     audioDir,
		Logger:       logger,
	})

	srv := &http.Server{Addr: ":" + port, Handler: router}
	go func() {
		logger.Info("server starting", zap.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}
