package main

import (
	"fmt"

	"meridian/internal/core/display"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newNeighborsCommand(env *environment) *cobra.Command {
	var (
		at    string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "neighbors <zone>",
		Short: "List zones whose wall clock reads the same as <zone>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reference := args[0]
			instant, err := env.instant(at)
			if err != nil {
				return err
			}
			snapshot, err := env.formatter.Snapshot(reference, instant)
			if err != nil {
				return fmt.Errorf("format %s: %w", reference, err)
			}

			neighbors := env.index.NeighborsOf(reference, instant, env.catalog.Zones())
			shown, overflow := neighbors, 0
			if limit > 0 {
				shown, overflow = display.Truncate(neighbors, limit)
			}

			tableWriter := newTable(cmd)
			tableWriter.SetTitle("%s %s, %s", display.Title(env.catalog.MetadataFor(reference)), display.TimeWithMeridiem(snapshot), snapshot.DateLabel)
			tableWriter.AppendHeader(table.Row{"#", "Zone", "Name", "Region"})
			for position, id := range shown {
				metadata := env.catalog.MetadataFor(id)
				tableWriter.AppendRow(table.Row{position + 1, id, metadata.DisplayName, metadata.Region.Flag() + " " + metadata.Region.Code()})
			}
			switch {
			case len(neighbors) == 0:
				tableWriter.SetCaption("No regional neighbors")
			case overflow > 0:
				tableWriter.SetCaption("+%d more", overflow)
			}
			tableWriter.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "instant to compare, RFC 3339 (default now)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum neighbors to list (0 lists all)")
	return cmd
}
