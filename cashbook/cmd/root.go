// Package cmd implements the cashbook command line.
package cmd

import (
	"fmt"
	"os"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mattn/go-isatty"
	"github.com/plenert/cashbook"
	"github.com/plenert/cashbook/cashbook/internal/config"
	"github.com/plenert/cashbook/cashbook/internal/fastcolor"
	"github.com/plenert/cashbook/cashbook/internal/logger"
	"github.com/plenert/cashbook/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configFilePath string
var ledgerFilePath string
var logLevel string
var noColor bool

// Set up by loadLedger before any command runs.
var (
	cfg          *config.Config
	log          *zap.SugaredLogger
	transactions *cashbook.TransactionService
	reports      *cashbook.ReportService
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cashbook",
	Short: "Personal income and expense ledger",
	Long: `Record income and expenses, list them by period, type or category,
and produce monthly and per-category reports.

Run without a command to use the interactive menu.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadLedger,
	RunE:              runMenu,
	Args:              cobra.NoArgs,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cc.Init(&cc.Config{
		RootCmd:  rootCmd,
		Headings: cc.HiCyan + cc.Bold + cc.Underline,
		Commands: cc.HiYellow + cc.Bold,
		Example:  cc.Italic,
		ExecName: cc.Bold,
		Flags:    cc.Bold,
	})

	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFilePath, "config", config.DefaultPath(), "Config file.")
	rootCmd.PersistentFlags().StringVarP(&ledgerFilePath, "file", "f", "", "Ledger file (*.json, or *.json.br compressed).")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error.")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
}

func loadLedger(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(configFilePath)
	if err != nil {
		return err
	}
	if ledgerFilePath != "" {
		cfg.File = ledgerFilePath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger.Init(cfg.LogLevel)
	log = logger.Get()

	if err := setupColor(cfg); err != nil {
		return err
	}

	svc, err := cashbook.Open(store.NewJSONFile(cfg.File), cashbook.WithLogger(log))
	if svc == nil {
		return err
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\nwarning: starting with an empty ledger; the next change replaces %s\n", err, cfg.File)
	}
	log.Infow("ledger opened", "path", cfg.File, "transactions", len(svc.Transactions()), "balance", svc.Balance().String())

	transactions = svc
	reports = cashbook.NewReportService(svc)
	return nil
}

func setupColor(c *config.Config) error {
	switch {
	case noColor || c.Color == config.ColorNever:
		fastcolor.SetEnabled(false)
	case c.Color == config.ColorAlways:
		fastcolor.SetEnabled(true)
	default:
		fd := os.Stdout.Fd()
		fastcolor.SetEnabled(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	}

	palette := []struct {
		color fastcolor.Color
		hex   string
	}{
		{colorNeg, c.Colors.Negative},
		{colorPos, c.Colors.Positive},
		{colorHeading, c.Colors.Heading},
		{colorCategory, c.Colors.Category},
	}
	for _, p := range palette {
		if p.hex == "" {
			continue
		}
		if err := fastcolor.SetHex(p.color, p.hex); err != nil {
			return err
		}
	}
	return nil
}
