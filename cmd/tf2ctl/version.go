// cmd/tf2ctl/version.go
// Implements the `tf2ctl version` sub-command, which prints build metadata
// injected via pkg/version.  Supports an optional --json flag for machine
// consumption.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smilerobotics/tf2-go/pkg/version"
)

func newVersionCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print tf2ctl version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputJSON {
				ver, commit, date := version.Components()
				payload := map[string]string{
					"version": ver,
					"commit":  commit,
					"date":    date,
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(payload)
			}

			fmt.Println(version.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Print version information as JSON")
	return cmd
}
