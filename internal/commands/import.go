package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/centavo-app/centavo/internal/config"
	"github.com/centavo-app/centavo/internal/importer"
	"github.com/centavo-app/centavo/internal/ledger"
	ledgerStore "github.com/centavo-app/centavo/internal/ledger/store"
	"github.com/centavo-app/centavo/internal/statement"
)

func newImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a bank statement export into the ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], statement.Format(format))
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "statement format (credit_card, checking_account); detected from headers when omitted")

	return cmd
}

func runImport(cmd *cobra.Command, path string, format statement.Format) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	svc := importer.NewService(ledger.NewService(ledgerStore.New(db)))

	result, err := svc.Import(cmd.Context(), format, f)
	if err != nil {
		return err
	}

	outcome := result.Outcome()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[%s] %s\n", outcome.Tier, outcome.Message())

	if outcome.Tier != importer.TierError {
		for _, msg := range outcome.Messages {
			fmt.Fprintf(out, "  warning: %s\n", msg)
		}
	}

	return nil
}
