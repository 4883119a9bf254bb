// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/adryserage/md2docx/internal/convert"
	"github.com/adryserage/md2docx/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input>",
	Short: "Convert a Markdown file or directory to .docx",
	Long: `Convert transforms a Markdown file into a Word document, or every Markdown
file in a directory into matching Word documents. Each file converts
independently; a bad file fails its own result without stopping the batch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		pipeline := convert.NewDocxPipeline(cfg)
		report, err := convert.ConvertPath(pipeline, cfg, args[0], output, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		printWarnings(cmd.ErrOrStderr(), report)
		if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
			if err := writeReport(reportPath, report); err != nil {
				return err
			}
		}
		if report.HasFailures() {
			return fmt.Errorf("%d of %d files failed", report.Failed, report.Total())
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file or directory (default: alongside each source)")
	convertCmd.Flags().Bool("recursive", false, "descend into subdirectories when converting a directory")
	convertCmd.Flags().String("link-style", "", "link rendering: hyperlink or text")
	convertCmd.Flags().StringSlice("ext", nil, "input extensions treated as Markdown (default .md)")
	convertCmd.Flags().Bool("no-normalize", false, "keep whitespace and typographic punctuation as written")
	convertCmd.Flags().Bool("title-heading", false, "emit the frontmatter title as a leading heading")
	convertCmd.Flags().String("report", "", "write the batch report to this path as YAML")

	rootCmd.AddCommand(convertCmd)
}

// resolveConfig layers flag values over the config file over the defaults.
// Only flags the user actually set override the file.
func resolveConfig(cmd *cobra.Command) (types.ConvertConfig, error) {
	cfg := types.DefaultConvertConfig()

	if exts := viper.GetStringSlice("extensions"); len(exts) > 0 {
		cfg.Extensions = exts
	}
	if viper.IsSet("recursive") {
		cfg.Recursive = viper.GetBool("recursive")
	}
	if viper.IsSet("link_style") {
		cfg.LinkStyle = types.LinkStyle(viper.GetString("link_style"))
	}
	if viper.IsSet("normalize_text") {
		cfg.NormalizeText = viper.GetBool("normalize_text")
	}
	if viper.IsSet("title_from_frontmatter") {
		cfg.TitleFromFrontmatter = viper.GetBool("title_from_frontmatter")
	}

	flags := cmd.Flags()
	if flags.Changed("ext") {
		cfg.Extensions, _ = flags.GetStringSlice("ext")
	}
	if flags.Changed("recursive") {
		cfg.Recursive, _ = flags.GetBool("recursive")
	}
	if flags.Changed("link-style") {
		style, _ := flags.GetString("link-style")
		cfg.LinkStyle = types.LinkStyle(style)
	}
	if flags.Changed("no-normalize") {
		noNormalize, _ := flags.GetBool("no-normalize")
		cfg.NormalizeText = !noNormalize
	}
	if flags.Changed("title-heading") {
		cfg.TitleFromFrontmatter, _ = flags.GetBool("title-heading")
	}

	if err := cfg.Validate(); err != nil {
		return types.ConvertConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// writeReport saves the machine-readable batch report for callers that want
// more than the exit code.
func writeReport(path string, report types.BatchReport) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// printWarnings lists every degraded construct on stderr, per file in batch
// order; progress lines already went to stdout as the batch ran.
func printWarnings(w io.Writer, report types.BatchReport) {
	for _, res := range report.Results {
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "warning: %s: %s (%s)\n", res.Input, warn.Message, warn.Kind)
		}
	}
}
