package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"school-trivia/internal/infra/file"
	"school-trivia/internal/infra/postgres"
)

// NewImportCmd loads a JSON or YAML bank file into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	var bankID string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a question bank file into Postgres",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			path := args[0]
			format, ok := file.FormatFor(path)
			if !ok {
				return fmt.Errorf("unsupported bank file %s", path)
			}
			if bankID == "" {
				bankID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			set, err := file.ReadBank(f, format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := runMigrations(ctx, cfg, log); err != nil {
				return err
			}
			pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.NewQuestionLoader(pool).ReplaceBank(ctx, bankID, set); err != nil {
				return err
			}
			log.Info("question bank imported", zap.String("bank", bankID), zap.Int("questions", set.Len()))
			return nil
		},
	}
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id (defaults to the file name)")
	return cmd
}
