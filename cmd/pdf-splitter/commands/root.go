// Package commands implements the splitter CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	verbose       bool
	noColor       bool
	extractImages bool
)

var rootCmd = &cobra.Command{
	Use:   "pdf-splitter <input_dir> <output_dir> <worker_count>",
	Short: "Batch-extract per-page text from a directory of PDF documents",
	Long: `pdf-splitter walks a directory of PDF documents and writes one text
artifact per page into <output_dir>/<document>/<page>/text_layer.txt,
extracting pages in parallel while a single writer serializes all
filesystem output.`,
	Args:          cobra.ExactArgs(3),
	SilenceErrors: true,
	RunE:          runSplit,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&extractImages, "extract-images", false, "also render each page to image_<n>.png")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
