package main

import (
	"github.com/spetersoncode/genstudio/mcp"
	"github.com/spf13/cobra"
)

func mcpCmd(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the studio operations as MCP tools over stdio",
		Long: `Serve the studio operations as MCP tools over stdio.

Configuration for an MCP client:

	{
	    "mcpServers": {
	        "genstudio": {
	            "command": "studio",
	            "args": ["mcp"],
	            "env": {"STUDIO_DB": "/path/to/genstudio.db"}
	        }
	    }
	}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			st, err := c.Status(cmd.Context())
			if err != nil {
				return err
			}
			if !st.Ready() {
				a.logger.Warn("no API key available; add one with 'studio keys add' or set GEMINI_API_KEY")
			}
			a.logger.Info("serving MCP over stdio", "keys", st.Total, "eligible", st.Eligible)
			return mcp.ServeStdio(c, mcp.WithName(name), mcp.WithLogger(a.logger))
		},
	}
	cmd.Flags().StringVar(&name, "name", "genstudio", "server name reported to clients")
	return cmd
}
