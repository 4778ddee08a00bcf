package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/category"
	categoryStore "github.com/centavo-app/centavo/internal/category/store"
	"github.com/centavo-app/centavo/internal/config"
)

func newMigrateCeilingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate-ceilings",
		Short: "Add monthly budget ceilings to categories (idempotent, safe to re-run)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			svc := category.NewService(categoryStore.New(db))

			applied, err := svc.BackfillCeilings(cmd.Context())
			if err != nil {
				return fmt.Errorf("backfilling ceilings: %w", err)
			}

			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "monthly ceilings added and seeded from defaults")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "monthly ceilings already present, nothing to do")
			}

			return nil
		},
	}
}
