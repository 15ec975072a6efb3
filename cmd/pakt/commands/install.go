package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/pakt/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var (
		dev      bool
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "install [packages...]",
		Short: "Install dependencies into the current project",
		Long: `Install resolves the project manifest and links every dependency into
pakt_modules. When package specs are given, they are added to the manifest
first and then installed alongside the existing dependencies.

A spec is either a bare name (resolved to the latest version) or name@range.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Install(cmd.Context(), app.InstallOptions{
				ProjectDir: ".",
				Packages:   args,
				Dev:        dev,
				Parallel:   parallel,
			})
			if err != nil {
				return err
			}

			for _, entry := range result.Entries {
				source := "downloaded"
				if entry.CacheHit {
					source = "cache"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "+ %s (%s, %s)\n", entry.Identity, source, entry.Strategy)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %d packages (%d from cache) in %s\n",
				len(result.Entries), result.CacheHits(), result.Duration.Round(time.Millisecond))

			return nil
		},
	}

	cmd.Flags().BoolVarP(&dev, "dev", "D", false, "Add new packages to devDependencies")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Maximum concurrent package installations (0 = number of CPUs)")

	return cmd
}
