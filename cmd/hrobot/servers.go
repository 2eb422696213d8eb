package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

// serverEntry is the wire shape of one element of GET /server and of the
// GET /server/{number} response.
type serverEntry struct {
	Server struct {
		ServerNumber int    `json:"server_number"`
		ServerName   string `json:"server_name"`
		ServerIP     string `json:"server_ip"`
		Product      string `json:"product"`
		DC           string `json:"dc"`
		Status       string `json:"status"`
		Cancelled    bool   `json:"cancelled"`
	} `json:"server"`
}

func newServersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "servers",
		Short: "List all dedicated servers of the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.Fetch(cmd.Context(), "/server")
			if err != nil {
				return renderError(err)
			}

			var servers []serverEntry
			if err := res.Decode(&servers); err != nil {
				return fmt.Errorf("decoding server list: %w", err)
			}

			table := uitable.New()
			table.AddRow("NUMBER", "NAME", "IP", "PRODUCT", "DC", "STATUS")
			for _, e := range servers {
				table.AddRow(e.Server.ServerNumber, e.Server.ServerName, e.Server.ServerIP,
					e.Server.Product, e.Server.DC, e.Server.Status)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}

func newServerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "server <number>",
		Short: "Show one dedicated server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.client.Fetch(cmd.Context(), "/server/"+args[0])
			if err != nil {
				return renderError(err)
			}

			var e serverEntry
			if err := res.Decode(&e); err != nil {
				return fmt.Errorf("decoding server: %w", err)
			}

			table := uitable.New()
			table.RightAlign(0)
			table.Separator = " "
			table.AddRow("number:", e.Server.ServerNumber)
			table.AddRow("name:", e.Server.ServerName)
			table.AddRow("ip:", e.Server.ServerIP)
			table.AddRow("product:", e.Server.Product)
			table.AddRow("dc:", e.Server.DC)
			table.AddRow("status:", e.Server.Status)
			table.AddRow("cancelled:", e.Server.Cancelled)
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}
}
