/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/empgraph/apiserver/config"
	"github.com/empgraph/apiserver/internal/events"
	"github.com/spf13/cobra"
)

// eventsCmd represents the events command.
var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect the employee event feed",
}

var eventsTailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Subscribe to the employee event feed and print events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		feed, err := events.New(cmd.Context(), cfg.Events)
		if err != nil {
			return fmt.Errorf("connect event backend failed: %w", err)
		}
		if feed == nil {
			return errors.New("no event backend configured")
		}
		defer func() {
			_ = feed.Close()
		}()

		return feed.Tail(cmd.Context(), func(event events.EmployeeEvent) {
			fmt.Fprintf(os.Stdout, "%s\t%s\t%s\t%s\n",
				event.OccurredAt.Format("2006-01-02T15:04:05Z07:00"),
				event.Type,
				event.EmployeeID,
				event.Email,
			)
		})
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsTailCmd)
}
