package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	deckmcp "github.com/youruser/talingchan-deck/internal/mcp"
	"github.com/youruser/talingchan-deck/internal/session"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve deck building tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := a.catalog(cmd.Context())
			sess := session.New(a.cfg.DeckRules(), a.cfg.Routing(), a.log)
			defer sess.Close()

			s := server.NewMCPServer("deckbuilder", "1.0.0")
			deckmcp.NewTools(catalog, sess).RegisterTools(s)
			return server.ServeStdio(s)
		},
	}
}
