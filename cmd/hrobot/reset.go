package main

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/elasticjava/community.hrobot/robot"
)

func newResetCmd(a *app) *cobra.Command {
	var resetType string

	cmd := &cobra.Command{
		Use:   "reset <number>",
		Short: "Trigger a reset on a dedicated server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := url.Values{}
			body.Set("type", resetType)

			res, err := a.client.Fetch(cmd.Context(), "/reset/"+args[0],
				robot.WithMethod(http.MethodPost),
				robot.WithFormBody(body),
			)
			if err != nil {
				return renderError(err)
			}

			var out struct {
				Reset struct {
					ServerNumber int    `json:"server_number"`
					Type         string `json:"type"`
				} `json:"reset"`
			}
			if err := res.Decode(&out); err != nil {
				return fmt.Errorf("decoding reset response: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reset %q sent to server %d\n", out.Reset.Type, out.Reset.ServerNumber)
			return nil
		},
	}

	cmd.Flags().StringVarP(&resetType, "type", "t", "hw", "reset type (sw, hw, power)")
	return cmd
}
