package cmd

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vippsas/protocode"
	"github.com/vippsas/protocode/go/mapfs"
)

// dep scans either the files given, or if none, the whole directory
func dep(files []string, partialScanResults bool) (protocode.Codebase, error) {
	config, err := LoadConfig(directory)
	if err != nil {
		return protocode.Codebase{}, err
	}

	var fsys fs.FS
	if len(files) > 0 {
		m := mapfs.MapFS{}
		for _, f := range files {
			m.Add(f)
		}
		fsys = m
	} else {
		fsys = os.DirFS(directory)
	}

	opts := protocode.Options{
		Exclude:            append(append([]string{}, config.Exclude...), exclude...),
		Concurrency:        config.Concurrency,
		Logger:             logrus.StandardLogger(),
		PartialScanResults: partialScanResults,
	}
	if concurrency > 0 {
		opts.Concurrency = concurrency
	}
	return protocode.Include(opts, fsys)
}

var (
	depCmd = &cobra.Command{
		Use:   "dep [files...]",
		Short: "Scan the directory tree or given files and report the top-level declarations and their generated Java names",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c, err := dep(args, true)
			if err != nil {
				return err
			}
			if c.Empty() {
				fmt.Fprintln(out, "No top-level declarations found in given paths")
				return nil
			}
			file := ""
			for _, d := range c.Declarations() {
				if d.File != file {
					if file != "" {
						fmt.Fprintln(out)
					}
					file = d.File
					fmt.Fprintln(out, file+":")
				}
				fmt.Fprintf(out, "  %s %s -> %s\n", d.Kind.Keyword(), d.Name, d.QualifiedName)
			}
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(depCmd)
}
