package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/spf13/cobra"
	"github.com/vippsas/protocode"
	"github.com/vippsas/protocode/protoparser"
	"gopkg.in/yaml.v3"
)

const (
	textFormat = "text"
	yamlFormat = "yaml"
	reprFormat = "repr"
)

func isKnownFormat(format string) bool {
	switch format {
	case textFormat, yamlFormat, reprFormat:
		return true
	default:
		return false
	}
}

var format string

type scannedFile struct {
	Path   string                 `yaml:"path"`
	Result protoparser.ScanResult `yaml:",inline"`
}

func writeScan(out io.Writer, format string, c protocode.Codebase) error {
	files := make([]scannedFile, 0, len(c.Files))
	for _, f := range c.Files {
		files = append(files, scannedFile{Path: f.Path, Result: f.Result})
	}

	switch format {
	case yamlFormat:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(files); err != nil {
			return err
		}
		return enc.Close()
	case reprFormat:
		_, err := fmt.Fprintln(out, repr.String(files, repr.Indent("  ")))
		return err
	default:
		for i, f := range files {
			if i > 0 {
				fmt.Fprintln(out)
			}
			writeText(out, f)
		}
		return nil
	}
}

func writeText(out io.Writer, f scannedFile) {
	fmt.Fprintln(out, f.Path+":")
	if f.Result.Package != "" {
		fmt.Fprintf(out, "  package: %s\n", f.Result.Package)
	}
	fmt.Fprintf(out, "  outer class: %s\n", f.Result.OuterClassName)
	fmt.Fprintf(out, "  multiple files: %t\n", f.Result.MultipleFiles)
	for _, names := range []struct {
		label string
		set   protoparser.NameSet
	}{
		{"services", f.Result.Services},
		{"enums", f.Result.Enums},
		{"messages", f.Result.Messages},
		{"extends", f.Result.Extends},
	} {
		if names.set.Len() > 0 {
			fmt.Fprintf(out, "  %s: %s\n", names.label, strings.Join(names.set.Sorted(), ", "))
		}
	}
}

var (
	scanCmd = &cobra.Command{
		Use:   "scan [files...]",
		Short: "Scan the directory tree or given files and print the metadata found in each .proto file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(directory)
			if err != nil {
				return err
			}
			f := format
			if f == "" {
				f = config.Format
			}
			if f == "" {
				f = textFormat
			}
			if !isKnownFormat(f) {
				_ = cmd.Help()
				return fmt.Errorf("unknown format %q", f)
			}

			c, err := dep(args, false)
			if err != nil {
				return err
			}
			if len(c.Files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No .proto files found in given paths")
				return nil
			}
			return writeScan(cmd.OutOrStdout(), f, c)
		},
	}
)

func init() {
	scanCmd.Flags().StringVarP(&format, "format", "f", "", "output format; text, yaml or repr")
	rootCmd.AddCommand(scanCmd)
}
