package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	genfilesCmd = &cobra.Command{
		Use:   "genfiles",
		Short: "List the Java source files protoc will generate for the .proto files in the directory tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				_ = cmd.Help()
				return errors.New("too many arguments")
			}
			c, err := dep(nil, false)
			if err != nil {
				return err
			}
			for _, genfile := range c.Genfiles() {
				fmt.Fprintln(cmd.OutOrStdout(), genfile)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(genfilesCmd)
}
