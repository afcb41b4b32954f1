package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stickies/internal/application/commands"
)

var reorderCmd = &cobra.Command{
	Use:     "move <source-id> <target-id>",
	Aliases: []string{"reorder"},
	Short:   "Move a note to another note's position",
	Long: `Move a note to the position of another note, as if it were dragged
onto it on the board. The board switches to manual order.

Examples:
  stickies-cli move groceries ideas`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewReorderCommand(GetEnv().Board, args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		if result.Moved {
			fmt.Println(strings.Join(result.Order, " "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reorderCmd)
}
