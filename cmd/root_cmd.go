package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stq",
	Short: "Stq is a tool for processing localizable string tables.",
	Long:  "Stq is a tool for processing localizable string tables. It decodes legacy .strings files, looks up keys, and converts tables to canonical .strings, JSON or YAML.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Stq",
	Long:  `All software has versions. This is Stq's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Stq v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(stringsCmd)
}
