package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"quiz-widget/internal/app"
	"quiz-widget/internal/config"
	"quiz-widget/internal/domain"
	transport "quiz-widget/internal/transport/http"
)

const shutdownTimeout = 5 * time.Second

// NewServeCmd builds the CLI subcommand serving the quiz over websocket.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the quiz over websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, config.DriverMemory)
	if err != nil {
		return err
	}
	defer closeStore()

	scores := app.NewHighScores(store, logger.Named("highscore"))
	tick := config.Duration(cfg.Quiz.Tick, app.DefaultTickInterval)
	ws := transport.NewWSHandler(domain.DefaultQuestions(), scores, tick, logger.Named("ws"))

	server := &http.Server{
		Addr:              ":" + finalPort,
		Handler:           transport.NewRouter(ws, scores, cfg.CORS.AllowedOrigins, logger.Named("http")),
		ReadHeaderTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting quiz service", zap.String("addr", server.Addr), zap.Duration("tick", tick))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
