package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"school-trivia/internal/app"
	"school-trivia/internal/config"
	"school-trivia/internal/domain"
	"school-trivia/internal/infra/file"
	"school-trivia/internal/infra/memory"
	pgstore "school-trivia/internal/infra/postgres"
	redisstore "school-trivia/internal/infra/redis"
	"school-trivia/internal/logging"
	transport "school-trivia/internal/transport/http"
)

const defaultBankID = "default"

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			return runServer(cmd.Context(), cfg, *port, log)
		},
	}
}

func loadConfig(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func runServer(ctx context.Context, cfg config.Config, portFlag string, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		var err error
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	bankID := defaultBankID
	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(map[string][]domain.Question{defaultBankID: sampleBank()})
	switch {
	case pool != nil:
		loader = pgstore.NewQuestionLoader(pool)
	case cfg.Questions.BankFile != "":
		loader = file.NewQuestionLoader(filepath.Dir(cfg.Questions.BankFile))
	}
	if cfg.Questions.BankFile != "" {
		base := filepath.Base(cfg.Questions.BankFile)
		bankID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	questionTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var questions app.QuestionRepository
	var sessions app.SessionRepository
	var leaderboard app.LeaderboardStore
	if redisClient != nil {
		questions = redisstore.NewQuestionRepository(redisClient, loader, questionTTL, log)
		sessions = redisstore.NewSessionStore(redisClient, redisTTL)
		leaderboard = redisstore.NewLeaderboard(redisClient, cfg.LeaderboardCapacity())
	} else {
		questions = memory.NewQuestionRepository(loader, questionTTL)
		sessions = memory.NewSessionStore()
		leaderboard = memory.NewLeaderboard(cfg.LeaderboardCapacity())
	}

	var results app.ResultStore = memory.NewResultStore()
	if pool != nil {
		results = pgstore.NewResultStore(pool)
	}

	service := app.NewGameService(sessions, questions, leaderboard, results, app.Settings{
		BankID:            bankID,
		TimerSeconds:      cfg.Game.TimerSeconds,
		PresentationDelay: config.TTLDuration(cfg.Game.PresentationDelay, 0),
		QuickThreshold:    config.TTLDuration(cfg.Game.QuickThreshold, 0),
		AutoAdvance:       cfg.Game.AutoAdvance,
		Shuffle:           cfg.Game.Shuffle,
		LeaderboardSize:   cfg.LeaderboardCapacity(),
	}, app.WithLogger(log))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", transport.NewWSHandler(service, log).ServeWS)
	transport.NewAPIHandler(service, log).Register(mux)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting game server", zap.String("addr", server.Addr), zap.String("bank", bankID))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
