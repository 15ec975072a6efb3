package commands

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/pakt/internal/core/domain"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store contents and usage counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, summary, err := c.app.Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store:        %d packages, %s\n", stats.PackageCount, stats.TotalSizeFormatted)
			fmt.Fprintf(out, "installs:     %d (%d from cache, %d downloaded)\n",
				summary.Installs, summary.CacheHits, summary.Downloads)
			fmt.Fprintf(out, "saved:        %s of downloads avoided\n", domain.FormatBytes(summary.BytesSaved))

			for _, lc := range sortedLinkCounts(summary.LinkCounts) {
				fmt.Fprintf(out, "links:        %s x%d\n", lc.strategy, lc.count)
			}

			if !summary.LastInstall.IsZero() {
				fmt.Fprintf(out, "last install: %s\n", humanize.Time(summary.LastInstall))
			}

			return nil
		},
	}
}

type linkCount struct {
	strategy domain.LinkStrategy
	count    int64
}

func sortedLinkCounts(counts map[domain.LinkStrategy]int64) []linkCount {
	out := make([]linkCount, 0, len(counts))
	for strategy, count := range counts {
		out = append(out, linkCount{strategy: strategy, count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].strategy < out[j].strategy })
	return out
}
