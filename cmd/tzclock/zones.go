package main

import (
	"strings"

	"meridian/internal/core/display"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newZonesCommand(env *environment) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "zones [filter]",
		Short: "List the timezones known to this host",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			instant, err := env.instant(at)
			if err != nil {
				return err
			}

			filter := ""
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}

			tableWriter := newTable(cmd)
			tableWriter.AppendHeader(table.Row{"Zone", "Name", "Region", "Time", "Offset"})
			shown := 0
			for _, id := range env.catalog.Zones() {
				if filter != "" && !strings.Contains(strings.ToLower(id), filter) {
					continue
				}
				metadata := env.catalog.MetadataFor(id)
				timeLabel, offset := "--:--", ""
				if snapshot, err := env.formatter.Snapshot(id, instant); err == nil {
					timeLabel = display.TimeWithMeridiem(snapshot)
					offset = display.Offset(snapshot.OffsetSeconds)
				}
				tableWriter.AppendRow(table.Row{id, metadata.DisplayName, metadata.Region.Flag() + " " + metadata.Region.Code(), timeLabel, offset})
				shown++
			}
			tableWriter.AppendFooter(table.Row{"", "", "", "Total", shown})
			tableWriter.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "instant to show, RFC 3339 (default now)")
	return cmd
}

func newTable(cmd *cobra.Command) table.Writer {
	tableWriter := table.NewWriter()
	tableWriter.SetOutputMirror(cmd.OutOrStdout())
	tableWriter.SetStyle(table.StyleRounded)
	tableWriter.Style().Options.DoNotColorBordersAndSeparators = true
	tableWriter.Style().Title.Align = text.AlignCenter
	return tableWriter
}
