package main

import (
	"propbrush/internal/editor"

	"github.com/spf13/cobra"
)

func newPaintCmd(flags *rootFlags) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "paint <scene.json>",
		Short: "Open the scene in the brush window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := flags.loadFile()
			if err != nil {
				return err
			}
			log := flags.logger(cmd)
			e, err := editor.New(editor.Options{
				File:       file,
				ConfigPath: flags.config,
				ScenePath:  args[0],
				Seed:       seed,
				Logger:     log,
			})
			if err != nil {
				return err
			}
			defer e.Close()

			log.Info("opening scene", "scene", args[0], "palette", e.Brush().Catalog().Path())
			e.Run()
			return nil
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed for scatter, rotation and scale")
	return cmd
}
