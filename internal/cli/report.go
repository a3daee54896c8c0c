package cli

// This file implements the "report" command, which renders the crash report
// for a simulated fault without installing a handler or exiting.

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pretty-panic/pkg/prettypanic"
)

// NewReportCmd returns the report subcommand.
func NewReportCmd(logger *zap.Logger) *cobra.Command {
	var fault faultFlags
	var metadata metadataFlags

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Preview the crash report",
		Long: `Print the crash report the default handler would write for a fault
on the given thread, using the resolved program metadata. Nothing panics and
the command exits normally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := fault.validate(); err != nil {
				logStructuredError(logger, err, "Invalid report flags")
				return err
			}
			meta, err := metadata.resolve()
			if err != nil {
				logStructuredError(logger, err, "Failed to resolve metadata")
				return err
			}
			if err := prettypanic.WriteReport(cmd.OutOrStdout(), meta, fault.info()); err != nil {
				err = wrapWithSentinel(ErrWriteReportFailed, err, "failed to write report preview")
				logStructuredError(logger, err, "Failed to write report")
				return err
			}
			return nil
		},
	}

	addFaultFlags(cmd.Flags(), &fault)
	addMetadataFlags(cmd.Flags(), &metadata)

	return cmd
}
