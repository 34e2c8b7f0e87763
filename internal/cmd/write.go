package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newWriteCmd(o *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "write MESSAGE...",
		Short: "Append a timestamped line to a log file",
		Long: `Append "[timestamp] message" to a log file and echo the message.
Without --file a new script_<timestamp>.log is created in the log directory.

Example:
  cb9 write "copied 3 files" --file "$LOG"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := o.journal()
			if err != nil {
				return err
			}
			path, err := j.WriteLog(strings.Join(args, " "), file)
			if err != nil {
				return err
			}
			if file == "" {
				o.out.KeyValue("Log file", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Log file to append to")
	return cmd
}
