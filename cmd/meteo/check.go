package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/meteo/internal/citycheck"
)

var checkCmd = &cobra.Command{
	Use:   "check <city name>",
	Short: "Tell whether a query looks like a city name, without calling the API",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	q := strings.Join(args, " ")
	v := citycheck.Validate(q)
	if v.Valid {
		Green.Fprintf(cmd.OutOrStdout(), "✅ %q looks like a city name\n", q)
		return nil
	}
	return fmt.Errorf("%q rejected: %s", q, v.Reason)
}
