package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/pakt/internal/app"
	"go.trai.ch/pakt/internal/core/domain"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	var (
		days   int
		dryRun bool
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove unused packages from the shared store",
		Long: `Clean removes packages from the shared store that have not been used
within the retention window. Projects that still link a removed package
will re-download it on the next install.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Clean(cmd.Context(), app.CleanOptions{
				Days:   days,
				All:    all,
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			if len(result.Candidates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "store is clean, nothing to remove")
				return nil
			}

			for _, pkg := range result.Candidates {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s (%s, last used %s)\n",
					pkg.Identity, domain.FormatBytes(pkg.Size), humanize.Time(pkg.LastUsed))
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "dry run: %d packages would be removed\n", len(result.Candidates))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "removed %d packages, freed %s\n",
				result.Removed, domain.FormatBytes(result.FreedBytes))
			if result.Partial > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %d packages were only partially removed\n", result.Partial)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Remove packages unused for at least this many days")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List removal candidates without deleting anything")
	cmd.Flags().BoolVar(&all, "all", false, "Remove every stored package regardless of age")

	return cmd
}
