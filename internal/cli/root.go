// Package cli implements the sheets command line tool, a thin front end
// over the character sheet HTTP API.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmelim/local-character-sheets/client"
)

// options carries flags shared by every subcommand.
type options struct {
	serverURL string
}

func (o *options) client() *client.Client {
	return client.New(o.serverURL)
}

// NewRootCmd builds the sheets command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sheets",
		Short:         "Manage character sheets on a local server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.serverURL, "server", "http://localhost:8080", "base URL of the character sheet server")

	root.AddCommand(
		newListCmd(opts),
		newCreateCmd(opts),
		newGetCmd(opts),
		newRenameCmd(opts),
		newSetCmd(opts),
		newDeleteCmd(opts),
		newLongRestCmd(opts),
	)

	return root
}
