package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"meridian/internal/core/display"
	"meridian/internal/core/worldclock"
	"meridian/internal/core/zone"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type watchOptions struct {
	noLocal bool
	limit   int
	frames  int
}

func newWatchCommand(env *environment) *cobra.Command {
	options := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch [zones...]",
		Short: "Live view of pinned zones and their neighbors",
		Long: `watch pins the given zones (or the configured default zones) and
prints every tick until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, env, args, options)
		},
	}

	cmd.Flags().BoolVarP(&options.noLocal, "exclude-local", "x", false, "hide the local clock")
	cmd.Flags().IntVar(&options.limit, "limit", 0, "neighbors per clock (default from config)")
	cmd.Flags().IntVar(&options.frames, "frames", 0, "exit after this many frames (0 runs until interrupted)")
	return cmd
}

func runWatch(cmd *cobra.Command, env *environment, zones []string, options *watchOptions) error {
	if len(zones) == 0 {
		zones = env.config.DefaultZones
	}
	limit := options.limit
	if limit <= 0 {
		limit = env.config.NeighborLimit
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := worldclock.New(worldclock.Config{
		TickInterval: env.config.TickInterval,
		LocalZone:    env.localZone,
		DefaultZones: zones,
		HideLocal:    options.noLocal || !env.config.ShowLocal,
	}, worldclock.Deps{
		Catalog:   env.catalog,
		Formatter: env.formatter,
		Index:     env.index,
		Clock:     env.clock,
		Logger:    env.logger.Named("worldclock"),
	})

	subscription := registry.Subscribe(1)
	registry.Mount()
	defer registry.Unmount()

	out := cmd.OutOrStdout()
	printer := newFramePrinter(env.catalog, limit)
	rendered := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\nExiting live mode...")
			return nil
		case frame, ok := <-subscription.Updates():
			if !ok {
				return nil
			}
			printer.print(out, frame)
			rendered++
			if options.frames > 0 && rendered >= options.frames {
				return nil
			}
		}
	}
}

type framePrinter struct {
	catalog   *zone.Catalog
	limit     int
	header    *color.Color
	day       *color.Color
	night     *color.Color
	neighbors *color.Color
	failed    *color.Color
}

func newFramePrinter(catalog *zone.Catalog, limit int) *framePrinter {
	return &framePrinter{
		catalog:   catalog,
		limit:     limit,
		header:    color.New(color.Faint),
		day:       color.New(color.FgYellow, color.Bold),
		night:     color.New(color.FgBlue, color.Bold),
		neighbors: color.New(color.FgHiBlack),
		failed:    color.New(color.FgRed),
	}
}

func (printer *framePrinter) print(out io.Writer, frame worldclock.Frame) {
	fmt.Fprintln(out, printer.header.Sprintf("── %s UTC ──", frame.At.UTC().Format("2006-01-02 15:04:05")))
	for _, state := range frame.Clocks {
		snapshot := state.Snapshot
		clockColor := printer.day
		if snapshot.IsNight {
			clockColor = printer.night
		}
		marker := " "
		if state.Primary {
			marker = "*"
		}
		title := display.Title(state.Metadata)
		fmt.Fprintf(out, "%s %-24s %s  %s %s  %s\n",
			marker,
			title,
			clockColor.Sprintf("%8s", display.TimeWithMeridiem(snapshot)),
			display.DayNight(snapshot),
			snapshot.DateLabel,
			display.Offset(snapshot.OffsetSeconds))
		if !state.Primary {
			fmt.Fprintln(out, "    "+printer.neighbors.Sprint(display.Neighbors(printer.catalog, state.Neighbors, printer.limit)))
		}
	}
	if len(frame.Failed) > 0 {
		fmt.Fprintln(out, printer.failed.Sprint("unavailable: "+strings.Join(frame.Failed, ", ")))
	}
}
