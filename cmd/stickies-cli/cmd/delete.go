package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stickies/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Long: `Delete a note file from the notes folder.

Warning: This operation cannot be undone.

Examples:
  stickies-cli delete 1718000000000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := GetEnv()
		result, err := commands.NewDeleteNoteCommand(e.Repo, e.Board, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
