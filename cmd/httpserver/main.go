package main

import (
	"fmt"
	"log/slog"
	"os"

	"dsmovie/httpserver"
	"dsmovie/movie"
	"dsmovie/pkg/config"
	"dsmovie/pkg/sentry"
	"dsmovie/postgres"
	"dsmovie/score"
	"dsmovie/user"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     fmt.Sprintf("%d", cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		slog.Error("Cannot open postgres connection", "error", err)
		os.Exit(1)
	}

	movieRepo := postgres.NewMovieRepository(db)
	userRepo := postgres.NewUserRepository(db)

	server := httpserver.Default(cfg)
	userService := user.NewUsecase(userRepo, httpserver.ClaimsResolver{})
	server.MovieService = movie.NewUsecase(movieRepo)
	server.ScoreService = score.NewUsecase(movieRepo, userService)
	server.UserService = userService
	if cfg.Port > 0 {
		server.Addr = fmt.Sprintf(":%d", cfg.Port)
	}

	slog.Info("server started!")
	if err := server.Start(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}
