package commands

import (
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/buildinfo"
	"github.com/centavo-app/centavo/internal/config"
	"github.com/centavo-app/centavo/internal/database"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "centavo",
		Short:   "Personal finance ledger and statement importer",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
		},
	}

	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newMigrateCeilingsCommand())

	return rootCmd
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	return database.New(database.Config{
		ConnString:      cfg.ConnectionString(),
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
}
