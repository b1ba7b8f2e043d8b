package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/frahmantamala/expense-ledger/internal/statement"
	"github.com/frahmantamala/expense-ledger/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	statementYear  int
	statementMonth int
	statementJSON  bool
)

var statementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Print the statement of a month",
	Long:  `Build the monthly statement for the given year and month and print it as a table or JSON.`,
	RunE:  runStatement,
}

func init() {
	now := time.Now().UTC()
	statementCmd.Flags().IntVar(&statementYear, "year", now.Year(), "statement year")
	statementCmd.Flags().IntVar(&statementMonth, "month", int(now.Month()), "statement month (1-12)")
	statementCmd.Flags().BoolVar(&statementJSON, "json", false, "print JSON instead of a table")
}

func runStatement(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)

	db, err := initDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	gdb, err := openGorm(db)
	if err != nil {
		return err
	}

	l := newLedger(cfg, gdb, logger.L())
	st, err := l.statement.BuildStatement(context.Background(), statementYear, statementMonth)
	if err != nil {
		return fmt.Errorf("build statement: %w", err)
	}

	if statementJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	return statement.Render(cmd.OutOrStdout(), st)
}
