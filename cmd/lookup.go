package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/mls-photo-cli/internal/match"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <parcel>",
	Short: "Resolve a parcel number against the lookup table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		matcher, err := match.NewFromCandidates(cfg.Lookup.TablePath)
		if err != nil {
			return err
		}
		zap.L().Debug("lookup table loaded",
			zap.String("path", matcher.TablePath()),
			zap.Int("parcels", matcher.Len()),
		)

		account, ok := matcher.Match(args[0])
		if !ok {
			return fmt.Errorf("no account match found for parcel: %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), account)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
