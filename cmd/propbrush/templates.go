package main

import (
	"fmt"
	"text/tabwriter"

	"propbrush/internal/assets"

	"github.com/spf13/cobra"
)

func newTemplatesCmd(flags *rootFlags) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "templates [dir]",
		Short: "List the templates a palette directory offers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flags.palette
			if len(args) == 1 {
				dir = args[0]
			}
			if dir == "" {
				f, err := flags.loadFile()
				if err != nil {
					return err
				}
				dir = f.Brush.PalettePath
			}
			if dir == "" {
				return fmt.Errorf("no palette directory given")
			}

			lib := assets.NewLibrary(flags.logger(cmd))
			list, err := lib.ListTemplates(dir, pattern)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tNAME\tPATH")
			for i, t := range list {
				if t == nil {
					fmt.Fprintf(w, "%d\t<unreadable>\t\n", i+1)
					continue
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, t.Name(), t.Path)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", assets.TemplatePattern, "file name pattern")
	return cmd
}
