package main

import (
	"fmt"
	"log/slog"
	"os"

	"propbrush/internal/config"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	config  string
	palette string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "propbrush",
		Short:         "Paint template instances onto scene surfaces",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&flags.config, "config", config.DefaultFile, "configuration file")
	root.PersistentFlags().StringVar(&flags.palette, "palette", "", "palette directory (overrides the configuration)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newPaintCmd(flags),
		newReplayCmd(flags),
		newConfigCmd(flags),
		newTemplatesCmd(flags),
	)
	return root
}

func (f *rootFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loadFile reads the configuration and applies the flag overrides.
func (f *rootFlags) loadFile() (config.File, error) {
	file, err := config.Load(f.config)
	if err != nil {
		return file, fmt.Errorf("load %s: %w", f.config, err)
	}
	if f.palette != "" {
		file.Brush.PalettePath = f.palette
	}
	return file, nil
}
