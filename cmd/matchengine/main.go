// Package main provides the matchengine CLI: structured candidate and job
// records in, a ranked match list out.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchengine",
	Short: "Rank candidates against job offers with interchangeable scoring strategies",
	Long:  "matchengine scores structured candidate and job offer records against each other, picking scoring strategies per pair and blending disagreeing scores into one ranked list.",
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML); defaults and MATCH_* environment variables apply without one")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
