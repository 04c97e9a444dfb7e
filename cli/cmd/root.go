package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "protocode",
		Short:        "protocode",
		SilenceUsage: true,
		Long:         `CLI tool for inspecting .proto files: which packages, outer classes and top-level types they declare, and which Java files protoc will generate for them.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	directory   string
	exclude     []string
	concurrency int
	verbose     bool
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&directory, "directory", "d", ".", "path to directory and subtree which will be scanned for *.proto-files")
	rootCmd.PersistentFlags().StringSliceVarP(&exclude, "exclude", "x", nil, "glob patterns of paths to skip, in addition to those in protocode.yaml")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "number of files to scan at the same time")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every scanned file")
}
