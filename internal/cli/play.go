package cli

import (
	"context"

	"github.com/spf13/cobra"
	"quiz-widget/internal/app"
	"quiz-widget/internal/config"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/tui"
)

// NewPlayCmd runs the quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath)
		},
	}
}

func runPlay(ctx context.Context, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg, config.DriverSQLite)
	if err != nil {
		return err
	}
	defer closeStore()

	scores := app.NewHighScores(store, logger.Named("highscore"))
	tick := config.Duration(cfg.Quiz.Tick, app.DefaultTickInterval)
	return tui.Run(ctx, domain.DefaultQuestions(), scores, tick, logger.Named("session"))
}
