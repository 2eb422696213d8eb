package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/elasticjava/community.hrobot/robot"
)

// firewallStatusInProcess is the transient state reported while the
// provider is still applying a firewall change.
const firewallStatusInProcess = "in process"

type firewallEntry struct {
	Firewall struct {
		ServerIP     string `json:"server_ip"`
		ServerNumber int    `json:"server_number"`
		Status       string `json:"status"`
		Port         string `json:"port"`
		WhitelistHOS bool   `json:"whitelist_hos"`
	} `json:"firewall"`
}

func newFirewallCmd(a *app) *cobra.Command {
	var wait bool

	cmd := &cobra.Command{
		Use:   "firewall <server-ip>",
		Short: "Show the firewall of a dedicated server",
		Long: "Show the firewall of a dedicated server. With --wait, polls the\n" +
			"webservice until the firewall has left the \"in process\" state or the\n" +
			"configured poll budget runs out.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/firewall/" + args[0]

			var res *robot.Result
			var err error
			if wait {
				res, err = a.client.Poll(cmd.Context(), path,
					func(res *robot.Result) bool {
						var e firewallEntry
						if res == nil || res.Decode(&e) != nil {
							return false
						}
						return e.Firewall.Status != firewallStatusInProcess
					},
					robot.WithCheckDelay(a.cfg.CheckDelay),
					robot.WithCheckTimeout(a.cfg.CheckTimeout),
				)
			} else {
				res, err = a.client.Fetch(cmd.Context(), path)
			}
			if err != nil {
				return renderError(err)
			}

			var e firewallEntry
			if err := res.Decode(&e); err != nil {
				return fmt.Errorf("decoding firewall: %w", err)
			}

			table := uitable.New()
			table.RightAlign(0)
			table.Separator = " "
			table.AddRow("server:", e.Firewall.ServerNumber)
			table.AddRow("ip:", e.Firewall.ServerIP)
			table.AddRow("status:", e.Firewall.Status)
			table.AddRow("port:", e.Firewall.Port)
			table.AddRow("whitelist_hos:", e.Firewall.WhitelistHOS)
			fmt.Fprintln(cmd.OutOrStdout(), table.String())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "poll until the firewall change is applied")
	return cmd
}
