package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/prefab/internal/app"
)

func (c *CLI) newEnsureCmd() *cobra.Command {
	var (
		force       bool
		noCache     bool
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "ensure [targets...]",
		Short: "Make the named artifacts exist, from cache or from source",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Without targets, list what the manifest offers.
				names, err := c.app.ListTargets()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			reports, err := c.app.Ensure(cmd.Context(), args, app.RunOptions{
				Force:       force,
				NoCache:     noCache,
				Parallelism: parallelism,
			})
			if err != nil {
				return err
			}
			for _, r := range reports {
				saved := ""
				if r.CacheSaved {
					saved = ", cached"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s in %s%s\n",
					r.Target, r.Outcome, r.Duration.Round(time.Millisecond), saved)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Rebuild even when the artifact already exists")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip cache restore and save")
	cmd.Flags().IntVarP(&parallelism, "parallel", "j", 0, "Maximum concurrent targets (0 = number of CPUs)")

	return cmd
}
