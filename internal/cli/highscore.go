package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"quiz-widget/internal/app"
	"quiz-widget/internal/config"
)

// NewHighScoreCmd prints or clears the stored high score.
func NewHighScoreCmd(configPath *string) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "highscore",
		Short: "Show the stored high score",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighScore(cmd.Context(), cmd.OutOrStdout(), *configPath, reset)
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "clear the stored high score")
	return cmd
}

func runHighScore(ctx context.Context, out io.Writer, configPath string, reset bool) error {
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
	if reset {
		if err := scores.Reset(ctx); err != nil {
			return fmt.Errorf("reset high score: %w", err)
		}
		fmt.Fprintln(out, "high score cleared")
		return nil
	}
	fmt.Fprintf(out, "high score: %d\n", scores.Current(ctx))
	return nil
}
