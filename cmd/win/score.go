package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/artem13815/win/pkg/compatibility"
	"github.com/artem13815/win/pkg/profile"
)

var scoreCmd = &cobra.Command{
	Use:   "score <userId> <candidateId>",
	Short: "Print the compatibility breakdown of two catalog profiles",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		st := memoryStores()
		c, err := build(ctx, cfg, st, log)
		if err != nil {
			return err
		}
		user, err := c.profiles.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("user %s: %w", args[0], err)
		}
		candidate, err := c.profiles.Get(ctx, args[1])
		if err != nil {
			return fmt.Errorf("candidate %s: %w", args[1], err)
		}
		printScore(cmd.OutOrStdout(), user, candidate, c.scorer.Score(user, candidate))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
}

func printScore(w io.Writer, user, candidate profile.Profile, s compatibility.Score) {
	fmt.Fprintf(w, "%s -> %s, %d (%s)\n", user.Name, candidate.Name, candidate.Age, candidate.Location)
	fmt.Fprintf(w, "  overall     %3d%%  %s\n", s.Overall, s.Grade)
	fmt.Fprintf(w, "  interests   %3d%%  %s\n", s.Interests, strings.Join(s.MatchedInterests, ", "))
	fmt.Fprintf(w, "  zodiac      %3d%%  %s\n", s.Zodiac, candidate.ZodiacSign)
	fmt.Fprintf(w, "  psychotype  %3d%%  %s\n", s.Psychotype, candidate.Psychotype)
}
