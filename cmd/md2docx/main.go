// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the md2docx CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the md2docx CLI.
var rootCmd = &cobra.Command{
	Use:   "md2docx",
	Short: "Convert Markdown documents to Word (.docx) files",
	Long: `md2docx converts Markdown documents into Microsoft Word files. It operates
on a single file or a whole directory, keeps inline styling (bold, italic,
code spans, links), and reports every construct it could not translate
instead of dropping it silently.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./md2docx.yaml or ~/.config/md2docx/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("md2docx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "md2docx"))
		}
	}

	viper.SetEnvPrefix("MD2DOCX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
