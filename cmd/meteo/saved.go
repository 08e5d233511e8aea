package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/utils"
)

var savedID int64

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved cities in the configured storage backend",
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withBookmarks(cmd, func(s *bookmark.Store) error {
			printBookmarks(cmd, s.List(cmd.Context()))
			return nil
		})
	},
}

var savedAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Save a city, ex: meteo saved add --id 2643743 London, GB",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := strings.TrimSpace(strings.Join(args, " "))
		e := bookmark.LabelOnly(label)
		if savedID > 0 {
			e = bookmark.NewEntry(savedID, label)
		}
		return withBookmarks(cmd, func(s *bookmark.Store) error {
			s.Save(cmd.Context(), e)
			printBookmarks(cmd, s.List(cmd.Context()))
			return nil
		})
	},
}

var savedRmCmd = &cobra.Command{
	Use:   "rm <id|label>",
	Short: "Remove saved cities by numeric id or exact label",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		arg := strings.Join(args, " ")
		ref := bookmark.ByLabel(arg)
		if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
			ref = bookmark.ByID(id)
		}
		return withBookmarks(cmd, func(s *bookmark.Store) error {
			s.Remove(cmd.Context(), ref)
			printBookmarks(cmd, s.List(cmd.Context()))
			return nil
		})
	},
}

func init() {
	savedAddCmd.Flags().Int64Var(&savedID, "id", 0, "OpenWeatherMap city id")
	savedCmd.AddCommand(savedListCmd, savedAddCmd, savedRmCmd)
	rootCmd.AddCommand(savedCmd)
}

func withBookmarks(cmd *cobra.Command, fn func(*bookmark.Store) error) error {
	storage, log, err := openBookmarks(cmd.Context())
	if err != nil {
		return err
	}
	defer utils.MustClose(storage, log, "storage")
	return fn(bookmark.NewStore(storage.KV, log))
}

func printBookmarks(cmd *cobra.Command, entries []bookmark.Entry) {
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		Faint.Fprintln(out, "no saved cities")
		return
	}
	for _, e := range entries {
		if e.HasID() {
			GreenBold.Fprintf(out, "%10d", *e.ID)
		} else {
			Faint.Fprintf(out, "%10s", "-")
		}
		fmt.Fprintf(out, "  %s\n", e.Label)
	}
}
