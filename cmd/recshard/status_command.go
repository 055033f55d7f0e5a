package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"recshard/internal/config"
	"recshard/internal/daemon"
	"recshard/internal/records"
	"recshard/internal/shards"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pending staged files and the shard inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			return printStatus(out, cfg, records.SourceDir, records.DestinationRoot, shouldColorize(out))
		},
	}
}

func printStatus(out io.Writer, cfg *config.Config, source, destination string, colorize bool) error {
	p := message.NewPrinter(language.English)

	fmt.Fprintln(out, renderSectionHeader("Organizer", colorize))

	running, err := daemon.InstanceRunning(cfg.LockPath())
	switch {
	case err != nil:
		fmt.Fprintln(out, renderStatusLine("Instance", statusError, err.Error(), colorize))
	case running:
		fmt.Fprintln(out, renderStatusLine("Instance", statusOK, "running", colorize))
	default:
		fmt.Fprintln(out, renderStatusLine("Instance", statusInfo, "not running", colorize))
	}

	pending, err := shards.Scan(source)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(out, renderStatusLine("Staging", statusWarn, source+" does not exist", colorize))
	case err != nil:
		fmt.Fprintln(out, renderStatusLine("Staging", statusError, err.Error(), colorize))
	default:
		kind := statusOK
		if pending.Matching > 0 {
			kind = statusInfo
		}
		msg := p.Sprintf("%d pending (%s), %d ignored", pending.Matching, humanize.Bytes(uint64(pending.Bytes)), pending.Ignored)
		fmt.Fprintln(out, renderStatusLine("Staging", kind, msg, colorize))
	}

	inventory, err := shards.List(destination)
	if err != nil {
		fmt.Fprintln(out, renderStatusLine("Destination", statusError, err.Error(), colorize))
		return nil
	}
	var totalFiles int
	var totalSize int64
	for _, shard := range inventory {
		totalFiles += shard.Files
		totalSize += shard.Size
	}
	fmt.Fprintln(out, renderStatusLine("Destination", statusInfo,
		p.Sprintf("%d shards, %d files in %s", len(inventory), totalFiles, destination), colorize))

	if len(inventory) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, renderSectionHeader("Shards", colorize))
	rows := make([][]string, 0, len(inventory))
	for _, shard := range inventory {
		rows = append(rows, []string{
			shard.Name,
			p.Sprintf("%d", shard.Files),
			humanize.Bytes(uint64(shard.Size)),
			humanize.Time(shard.ModTime),
		})
	}
	footer := []string{"Total", p.Sprintf("%d", totalFiles), humanize.Bytes(uint64(totalSize)), ""}
	fmt.Fprintln(out, renderTable(
		[]string{"Shard", "Files", "Size", "Modified"},
		rows,
		footer,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}
