package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stickies/internal/application/commands"
	"stickies/internal/domain"
)

var sortCmd = &cobra.Command{
	Use:   "sort [mode]",
	Short: "Show or change the sort mode",
	Long: `Show the active sort mode, or switch to another one.

Modes: ` + strings.Join(domain.SortModeTags(), ", ") + `

Examples:
  stickies-cli sort
  stickies-cli sort created-asc`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: domain.SortModeTags(),
	RunE: func(cmd *cobra.Command, args []string) error {
		board := GetEnv().Board
		if len(args) == 0 {
			mode := board.SortMode()
			fmt.Printf("%s (%s)\n", mode, mode.Label())
			return nil
		}

		result, err := commands.NewSetSortCommand(board, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the manual order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewResetOrderCommand(GetEnv().Board).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(resetCmd)
}
