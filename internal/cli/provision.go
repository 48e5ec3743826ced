package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewContainer runs schema provisioning as part of startup, so the command
// only has to open and close the container.
var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Create or migrate the database schema and exit",
	Run: func(cmd *cobra.Command, args []string) {
		container, err := newContainer()
		if err != nil {
			exitErr("provision schema", err)
		}
		driver := container.Config.Database.Driver
		if err := container.Close(); err != nil {
			exitErr("close container", err)
		}
		fmt.Printf("schema provisioned (%s)\n", driver)
	},
}

func init() {
	RootCmd.AddCommand(provisionCmd)
}
