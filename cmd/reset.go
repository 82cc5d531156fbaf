package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpreston/factdrill/internal/profile"
)

var resetCmd = &cobra.Command{
	Use:   "reset <player>",
	Short: "Reset a player's progress, keeping the profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		ctx := cmd.Context()

		repo := st.ProfileRepo()
		old, err := repo.LoadProfile(ctx, args[0])
		if err != nil {
			return err
		}

		fresh := profile.New(old.Name)
		fresh.Theme = old.Theme
		fresh.CreatedAtMs = old.CreatedAtMs
		if err := repo.SaveProfile(ctx, fresh); err != nil {
			return err
		}
		fmt.Printf("Reset %s. Every fact is waiting again!\n", old.Name)
		return nil
	},
}
