package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("docuchat version %s\n", version)
		if verbose && searchIndex != nil {
			if searchIndex.Healthy() {
				cmd.Println("vector store: healthy")
			} else {
				cmd.Println("vector store: degraded")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
