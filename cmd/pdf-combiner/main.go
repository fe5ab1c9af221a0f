// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf-combiner CLI. The root command
// merges a folder of PDFs into one document with a bookmark per file; the
// serve subcommand runs the same merge behind a local web page.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-combiner/internal/logging"
	"github.com/pdiddy/pdf-combiner/internal/prompt"
	"github.com/pdiddy/pdf-combiner/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd merges PDFs; it is both the base command and the default action.
var rootCmd = &cobra.Command{
	Use:   "pdf-combiner [folder]",
	Short: "Combine PDFs in a folder into one file with a bookmark per file",
	Long: `pdf-combiner merges every PDF in a folder, optionally including subfolders,
into a single PDF. Files are ordered naturally (2.pdf before 10.pdf) and each
one gets a bookmark, titled after its file name, pointing at its first page.

Without -o or -y the command runs interactively and asks for the missing
settings before merging.`,
	Example: `  pdf-combiner /path/to/pdfs                     # interactive prompts
  pdf-combiner /path/to/pdfs -o combined.pdf -r  # non-interactive, recursive
  pdf-combiner /path/to/pdfs -y                  # non-interactive defaults
  pdf-combiner -f /path/to/pdfs                  # flag form of the folder`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	Version:      version,
	RunE:         runCombine,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SetVersionTemplate("pdf-combiner {{.Version}}\n")

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf-combiner.yaml or ~/.config/pdf-combiner/pdf-combiner.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "pretty", "log format: pretty or json")
	rootCmd.PersistentFlags().Bool("verbose", false, "log at debug level regardless of --log-level")

	rootCmd.Flags().StringP("folder", "f", "", "folder containing PDF files")
	rootCmd.Flags().StringP("output", "o", types.DefaultOutputName, "output filename, relative to the folder")
	rootCmd.Flags().BoolP("recursive", "r", false, "include PDFs in subfolders")
	rootCmd.Flags().BoolP("yes", "y", false, "assume yes to all prompts")
	rootCmd.Flags().String("manifest", "", "write a YAML (or .json) manifest of the merge to this path")
	rootCmd.Flags().Bool("strict", false, "use strict PDF validation instead of relaxed")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("log.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("recursive", rootCmd.Flags().Lookup("recursive"))

	viper.SetDefault("relaxed", true)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf-combiner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf-combiner"))
		}
	}

	viper.SetEnvPrefix("PDF_COMBINER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the logger from the log.* settings.
func newLogger() zerolog.Logger {
	return logging.New(logging.Options{
		Level:   viper.GetString("log.level"),
		Format:  viper.GetString("log.format"),
		Verbose: viper.GetBool("log.verbose"),
	})
}

func runCombine(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("folder")
	if len(args) == 1 {
		folder = args[0]
	}
	yes, _ := cmd.Flags().GetBool("yes")
	manifest, _ := cmd.Flags().GetString("manifest")
	strict, _ := cmd.Flags().GetBool("strict")

	cfg := types.CombineConfig{
		Folder:    folder,
		Output:    viper.GetString("output"),
		Recursive: viper.GetBool("recursive"),
		AssumeYes: yes,
		Relaxed:   viper.GetBool("relaxed") && !strict,
		Manifest:  manifest,
	}

	r := &runner{
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		prompt: prompt.Terminal{},
		log:    logging.WithComponent(newLogger(), "combine"),
	}
	return r.run(cmd.Context(), cfg, runMode{
		interactive:  !(cfg.Folder != "" && (cmd.Flags().Changed("output") || cfg.AssumeYes)),
		recursiveSet: cmd.Flags().Changed("recursive") || viper.InConfig("recursive"),
		outputSet:    cmd.Flags().Changed("output"),
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
