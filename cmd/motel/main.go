// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the motel CLI.
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

// rootCmd is the base command for the motel CLI.
var rootCmd = &cobra.Command{
	Use:   "motel",
	Short: "Few-shot entity extraction via motif ensembles",
	Long: `motel extracts structured entities from documents given only a few
positive examples. It discovers reusable textual motifs around labeled
mentions and combines many weak motif predictors into ensemble decisions.

Each pipeline stage is a subcommand: process ingests raw text into a
corpus, neighborhoods extracts local context windows, enumerate samples
generalized motifs, match evaluates motifs into a sparse image, and
evaluate aggregates the image into a performance report.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./motel.yaml or ~/.config/motel/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("motel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "motel"))
		}
	}

	viper.SetEnvPrefix("MOTEL")
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
