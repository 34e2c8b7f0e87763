package cmd

import (
	"github.com/spf13/cobra"

	"cb9-core/internal/utils"
)

func newInitCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the root, log and temp directories",
		Long: `Create the configured working directories if they do not exist.
Existing directories are left untouched.

Example:
  cb9 init`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.requireValid(); err != nil {
				return err
			}

			dirs := []struct {
				label string
				path  string
			}{
				{"Root", o.cfg.Paths.Root},
				{"Logs", o.cfg.Paths.LogDir()},
				{"Temp", o.cfg.Paths.TempDir()},
			}

			for _, d := range dirs {
				path, err := utils.ExpandPath(d.path)
				if err != nil {
					return err
				}
				created, err := utils.EnsureFolder(path)
				if err != nil {
					return err
				}
				state := "exists"
				if created {
					state = "created"
				}
				o.out.KeyValue(d.label, path+" ("+state+")")
			}
			return nil
		},
	}
}
