package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"souqd/internal/config"
	"souqd/internal/handler"
	"souqd/internal/job"
	"souqd/internal/middleware"
	"souqd/internal/repo"
	"souqd/internal/schedule"
	"souqd/internal/service"
	"souqd/internal/session"
	"souqd/internal/store"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "souqd",
		Short: "souq marketplace backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run souqd server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("users_file", cfg.UsersFile),
		zap.String("products_file", cfg.ProductsFile),
	)

	users := repo.NewUserRepo(cfg.UsersFile)
	products := repo.NewProductRepo(cfg.ProductsFile)
	if err := users.BackfillCodes(); err != nil {
		logutil.GetLogger(context.Background()).Warn("code backfill failed", zap.Error(err))
	}

	codeTTL := time.Duration(cfg.CodeTTLSeconds) * time.Second
	sessionTTL := time.Hour * time.Duration(cfg.SessionTTLHours)
	codes := store.NewCodeStore(codeTTL)
	tokens := store.NewTokenStore(codeTTL)
	pending := store.NewPendingChangeStore(codeTTL)
	sessions := session.NewManager(cfg.MaxSessions, sessionTTL)

	authService := service.NewAuthService(users, []byte(cfg.JWTSecret), sessionTTL)
	verifyService := service.NewVerificationService(users, codes, tokens)
	profileService := service.NewProfileService(users, pending)
	productService := service.NewProductService(users, products)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService, sessions),
		Verify:    handler.NewVerificationHandler(verifyService, sessions),
		Account:   handler.NewAccountHandler(profileService, sessions),
		Products:  handler.NewProductHandler(productService, sessions),
		Sessions:  sessions,
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.CORS(cfg.CORSOrigins),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := schedule.NewCronScheduler()
	if err := sched.AddJob(job.NewExpirySweepJob(codes, tokens, pending), "* * * * *"); err != nil {
		return fmt.Errorf("schedule expiry sweep: %w", err)
	}
	sched.Start(ctx)

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	sched.Stop()
	return nil
}
