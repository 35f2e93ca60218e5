// Command arcball opens the spherical item menu in a window, replays input
// scripts headlessly, and prints the default tuning.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/arcball"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	width      int
	height     int

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "arcball",
	Short: "Inertial arcball menu",
	Long: `arcball drives a sphere of menu items with an inertial arcball.

Drag to spin the sphere; on release it keeps spinning, slows down and snaps
the nearest item to the front.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Tuning file (YAML or JSON)")
	rootCmd.PersistentFlags().IntVar(&width, "width", 800, "Viewport width in pixels")
	rootCmd.PersistentFlags().IntVar(&height, "height", 600, "Viewport height in pixels")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(defaultsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
			_ = logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// loadConfig returns the defaults, or the file named by --config.
func loadConfig() (arcball.Config, error) {
	if configPath == "" {
		return arcball.DefaultConfig(), nil
	}
	cfg, err := arcball.LoadConfigFile(configPath)
	if err != nil {
		return arcball.Config{}, err
	}
	logger.Debug("config loaded", zap.String("path", configPath))
	return cfg, nil
}
