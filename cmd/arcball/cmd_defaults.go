package main

import (
	"github.com/phanxgames/arcball"
	"github.com/spf13/cobra"
)

// defaultsCmd prints the default tuning
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default tuning as YAML",
	Long: `Prints the default tuning. Redirect it to a file, edit it and pass it
back with --config.`,
	Args: cobra.NoArgs,
	RunE: runDefaults,
}

func runDefaults(cmd *cobra.Command, args []string) error {
	data, err := arcball.DefaultConfig().Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
