package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/five82/forkify/internal/config"
	"github.com/five82/forkify/internal/logtail"
)

var (
	logsLines int
	logsLevel string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the end of the forkify log",
	Long: `Prints the last entries of the log file named by log_file in config.toml.

Example:
  forkify logs -n 100 --level warn`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 50, "number of log lines to read (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "debug", "lowest level to print")
	rootCmd.AddCommand(logsCmd)
}

var levelStyles = map[zapcore.Level]lipgloss.Style{
	zapcore.DebugLevel: lipgloss.NewStyle().Faint(true),
	zapcore.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")),
	zapcore.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
}

func runLogs(cmd *cobra.Command, args []string) error {
	var minLevel zapcore.Level
	if err := minLevel.UnmarshalText([]byte(logsLevel)); err != nil {
		return fmt.Errorf("invalid level %q: %w", logsLevel, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	entries, err := logtail.Tail(cfg.LogFile, logsLines, minLevel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No log entries in %s\n", cfg.LogFile)
		return nil
	}
	for _, e := range entries {
		line := e.Format()
		if style, ok := levelStyles[e.Level]; ok {
			line = style.Render(line)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
