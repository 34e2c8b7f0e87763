package cmd

import (
	"github.com/spf13/cobra"
)

func newJobCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Open or close a job bracket in a log file",
		Long: `Write START and END markers around a job run.

Commands:
  open      Append a START block, prints the log file path
  close     Append an END block`,
	}
	cmd.AddCommand(newJobOpenCmd(o), newJobCloseCmd(o))
	return cmd
}

func newJobOpenCmd(o *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "open NAME VERSION",
		Short: "Append a START block for a job",
		Long: `Append a START block for a job and print the log file path.
Without --file a new <name>_<timestamp>.log is created in the log directory.

Example:
  LOG=$(cb9 job open "Nightly Backup" 2.1)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := o.journal()
			if err != nil {
				return err
			}
			job, err := j.Open(args[0], args[1], file)
			if err != nil {
				return err
			}
			o.out.Plain("%s", job.Path())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Log file to append to")
	return cmd
}

func newJobCloseCmd(o *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "close NAME VERSION",
		Short: "Append an END block for a job",
		Long: `Append an END block for a job to an existing log file.

Example:
  cb9 job close "Nightly Backup" 2.1 --file "$LOG"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := o.journal()
			if err != nil {
				return err
			}
			return j.CloseFile(args[0], args[1], file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Log file of the job (required)")
	return cmd
}
