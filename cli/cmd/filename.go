package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vippsas/protocode/protoparser"
)

var (
	filenameCmd = &cobra.Command{
		Use:   "filename <path>",
		Short: "Print the name of a .proto file without directory and extension",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				_ = cmd.Help()
				return errors.New("need to specify argument <path>")
			}
			name, err := protoparser.NewScanner(args[0], args[0]).Filename()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(filenameCmd)
}
