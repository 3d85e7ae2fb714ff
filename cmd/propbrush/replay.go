package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"propbrush/internal/camera"
	"propbrush/internal/editor"
	"propbrush/internal/replay"

	"github.com/spf13/cobra"
)

func newReplayCmd(flags *rootFlags) *cobra.Command {
	var scene, out string
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Play a scripted brush session without a window",
		Long: "Play a scripted brush session without a window. Pointer positions in the\n" +
			"script are world X and Z; rays are cast straight down onto the scene.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			file, err := flags.loadFile()
			if err != nil {
				return err
			}
			if err := script.Apply(&file); err != nil {
				return err
			}

			// Paths in the script are relative to the script
			base := filepath.Dir(args[0])
			if scene == "" && script.Scene != "" {
				scene = relativeTo(base, script.Scene)
			}
			if out == "" && script.Save != "" {
				out = relativeTo(base, script.Save)
			}
			if scene == "" {
				return fmt.Errorf("no scene: pass --scene or set scene in the script")
			}

			e, err := editor.New(editor.Options{
				File:      file,
				ScenePath: scene,
				Seed:      script.Seed,
				Projector: camera.TopDown{Height: replay.ProjectorHeight},
				Logger:    flags.logger(cmd),
			})
			if err != nil {
				return err
			}
			defer e.Close()

			results := replay.Run(e, script)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STEP\tOP\tMODE\tOBJECTS\tUNDO")
			for _, r := range results {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\n", r.Index, r.Op, r.Mode, r.Objects, r.Undo)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if out != "" {
				return e.World().SaveScene(out)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&scene, "scene", "", "scene file (overrides the script)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the resulting scene here")
	return cmd
}

func relativeTo(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
