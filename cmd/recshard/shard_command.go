package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recshard/internal/records"
)

func newShardCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "shard <id|filename>...",
		Short:       "Show the shard directory a record id or filename maps to",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				shard, err := shardForArg(arg)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%s\n", arg, shard)
			}
			return nil
		},
	}
}

// shardForArg accepts a bare decimal id or a record filename.
func shardForArg(arg string) (string, error) {
	if id, err := records.ParseID(arg); err == nil {
		return records.Shard(id), nil
	}
	rec, ok := records.Parse(arg)
	if !ok {
		return "", fmt.Errorf("%q is neither a record id nor a record filename", arg)
	}
	return rec.Shard, nil
}
