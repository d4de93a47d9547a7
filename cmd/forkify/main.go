package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/forkify/internal/app"
)

var (
	// Global flags
	configPath string
	prefsPath  string
	verbose    bool

	// Root flags
	recipeID string
)

var rootCmd = &cobra.Command{
	Use:   "forkify",
	Short: "Search, scale and bookmark recipes from the terminal",
	Long: `forkify browses the Forkify recipe API.

Run without arguments to start the interactive interface. The subcommands
run a single action and print the result.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/forkify/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "prefs file (default ~/.config/forkify/prefs.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().StringVar(&recipeID, "recipe", "", "recipe id to open on start")
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "forkify: %v\n", err)
		return 1
	}
	return 0
}

func runTUI(cmd *cobra.Command, args []string) error {
	return app.Run(commandContext(cmd), appOptions())
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		Recipe:     recipeID,
		Verbose:    verbose,
	}
}

// openApp wires the application for a one-shot command. Callers must Close it.
func openApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(commandContext(cmd), appOptions())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
