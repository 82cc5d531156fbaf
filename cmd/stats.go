package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpreston/factdrill/internal/facts"
)

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show a player's records and history",
	Long:  "Show a player's records and history. With no argument, the most recently played player is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		ctx := cmd.Context()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			recent, err := st.ProfileRepo().RecentNames(ctx)
			if err != nil {
				return err
			}
			if len(recent) == 0 {
				return fmt.Errorf("no players yet; pass a name or play a drill first")
			}
			name = recent[0]
		}

		p, err := st.ProfileRepo().LoadProfile(ctx, name)
		if err != nil {
			return err
		}

		mastered := 0
		for _, key := range facts.AllKeys() {
			if p.Mastered(key) {
				mastered++
			}
		}

		fmt.Printf("Player:          %s\n", p.Name)
		fmt.Printf("Games played:    %d\n", p.GamesPlayed)
		fmt.Printf("Mastered facts:  %d/%d\n", mastered, facts.Count)
		fmt.Printf("Current streak:  %d\n", p.GlobalStreak)
		fmt.Printf("Best streak:     %d\n", p.Best.BestStreak)
		fmt.Printf("Best score:      %d%%\n", p.Best.BestPercent)
		if p.Best.BestAvgTimeSec != nil {
			fmt.Printf("Fastest avg:     %ds\n", *p.Best.BestAvgTimeSec)
		}
		if len(p.Achievements) > 0 {
			fmt.Printf("Achievements:    %v\n", p.Achievements)
		}

		totals, err := st.AttemptRepo().Totals(ctx, p.Name)
		if err != nil {
			return err
		}
		fmt.Printf("All-time:        %d answers, %d correct\n", totals.Attempts, totals.Correct)

		hardest, err := st.AttemptRepo().HardestFacts(ctx, p.Name, 5)
		if err != nil {
			return err
		}
		if len(hardest) > 0 {
			fmt.Println("Trickiest facts:")
			for _, ft := range hardest {
				f, err := facts.ParseKey(ft.FactKey)
				if err != nil {
					continue
				}
				fmt.Printf("  %s = %-4d %d/%d correct\n", f.String(), f.Answer(), ft.Correct, ft.Attempts)
			}
		}
		return nil
	},
}
