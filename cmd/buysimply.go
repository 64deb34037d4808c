package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/buysimply/buysimply/cmd/server"
)

var buysimplyCmd = &cobra.Command{
	Use:   "buysimply",
	Short: "Buysimply is a backend service exposing loan records behind role-gated endpoints",
	Long: `Buysimply serves staff-facing loan records over HTTP. Every request passes
through an authorization guard (bearer tokens, logout revocation, role
matching) and every failure leaves through one error-normalization
boundary.`,
}

func Execute() {
	if err := buysimplyCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	buysimplyCmd.AddCommand(server.ServerCmd)
}
