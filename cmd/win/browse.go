package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/artem13815/win/pkg/discovery"
)

const (
	choiceLike    = "Like"
	choiceDislike = "Dislike"
	choiceMatches = "Show matches"
	choiceReset   = "Start over"
	choiceQuit    = "Quit"
)

var browseCmd = &cobra.Command{
	Use:   "browse <userId>",
	Short: "Swipe through the catalog as the given user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		c, err := build(ctx, cfg, memoryStores(), log)
		if err != nil {
			return err
		}
		return browse(ctx, cmd.OutOrStdout(), c.discovery, args[0])
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func browse(ctx context.Context, w io.Writer, uc discovery.UseCase, userID string) error {
	card, err := uc.Current(ctx, userID)
	if err != nil {
		return err
	}
	prompt := promptui.Select{
		Label: "Your choice",
		Items: []string{choiceLike, choiceDislike, choiceMatches, choiceReset, choiceQuit},
	}
	for {
		printCard(w, card)
		_, choice, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		var done bool
		card, done, err = step(ctx, w, uc, userID, choice, card)
		if err != nil || done {
			return err
		}
	}
}

// step applies one menu choice and returns the card to show next.
func step(ctx context.Context, w io.Writer, uc discovery.UseCase, userID, choice string, card discovery.Card) (discovery.Card, bool, error) {
	switch choice {
	case choiceLike, choiceDislike:
		var (
			d   discovery.Decision
			err error
		)
		if choice == choiceLike {
			d, err = uc.Like(ctx, userID)
		} else {
			d, err = uc.Dislike(ctx, userID)
		}
		if err != nil {
			return card, true, err
		}
		if d.Matched {
			fmt.Fprintf(w, "\nIt's a match with %s!\n", d.Profile.Name)
		}
		if d.Next == nil {
			return card, true, nil
		}
		return *d.Next, false, nil
	case choiceMatches:
		ms, err := uc.Matches(ctx, userID)
		if err != nil {
			return card, true, err
		}
		fmt.Fprintf(w, "\nMatches (%d):\n", len(ms))
		for _, m := range ms {
			fmt.Fprintf(w, "  %s, %d  %d%%\n", m.Profile.Name, m.Profile.Age, m.Compatibility.Overall)
		}
		return card, false, nil
	case choiceReset:
		next, err := uc.Reset(ctx, userID)
		if err != nil {
			return card, true, err
		}
		return next, false, nil
	default:
		return card, true, nil
	}
}

func printCard(w io.Writer, card discovery.Card) {
	p := card.Profile
	fmt.Fprintf(w, "\n[%d/%d] %s, %d  %s\n", card.Position+1, card.Total, p.Name, p.Age, p.Location)
	if p.Bio != "" {
		fmt.Fprintf(w, "  %s\n", p.Bio)
	}
	fmt.Fprintf(w, "  compatibility %d%% (%s): interests %d%%, zodiac %d%%, psychotype %d%%\n",
		card.Compatibility.Overall, card.Compatibility.Grade,
		card.Compatibility.Interests, card.Compatibility.Zodiac, card.Compatibility.Psychotype)
}
