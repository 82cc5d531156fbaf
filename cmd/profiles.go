package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List stored players",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		infos, err := st.ProfileRepo().ListProfiles(cmd.Context())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No players yet.")
			return nil
		}
		for _, info := range infos {
			updated := time.UnixMilli(info.UpdatedAtMs).Format("2006-01-02 15:04")
			fmt.Printf("%-24s last played %s\n", info.Name, updated)
		}
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <player>",
	Short: "Delete a player and their history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ProfileRepo().DeleteProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s.\n", args[0])
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesDeleteCmd)
}
