package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "chronicle",
		Short: "Campaign entity store with hybrid lexical/fuzzy search",
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")
	root.AddCommand(initCmd())
	root.AddCommand(ingestCmd())
	root.AddCommand(campaignCmd())
	root.AddCommand(entityCmd())
	root.AddCommand(relationCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(sqlCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(versionCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
