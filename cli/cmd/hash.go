package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	hashCmd = &cobra.Command{
		Use:   "hash",
		Short: "Compute a hash of the .proto files, suitable for detecting when generated code is stale",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := dep(nil, false)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), c.Fingerprint)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(hashCmd)
}
