package commands

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [flags]",
		Short: "Verify cases against their expected output in both directions",
		Long: `check scans every case forward and reversed. A case passes when both
results equal its expected output; cases without one must give the same
result in both directions. The command exits non-zero when any case fails.

Without --file or --dir the built-in regression cases are checked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.symmetry = true
			return runScan(cmd, opts, nil, true)
		},
	}
}
