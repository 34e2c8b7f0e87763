package cmd

import (
	"github.com/spf13/cobra"
)

func newRotateCmd(o *rootOptions) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "rotate NAME VERSION",
		Short: "Close the current log and start a new one",
		Long: `Mark the current log file as rotated and create a new one with a
creation header. Prints the new log file path.

Example:
  LOG=$(cb9 rotate "Nightly Backup" 2.1 --from "$LOG")`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := o.journal()
			if err != nil {
				return err
			}
			path, err := j.Rotate(args[0], args[1], from)
			if err != nil {
				return err
			}
			o.out.Plain("%s", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Log file being rotated out")
	return cmd
}
