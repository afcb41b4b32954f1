package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stickies/internal/application/commands"
)

var (
	listAll   bool
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in board order",
	Long: `List notes in the order the board shows them.

Without --all only the first page is listed, like the board on open.

Examples:
  stickies-cli list
  stickies-cli list --all
  stickies-cli list --all --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewListCommand(GetEnv().Board, listAll, listLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d of %d)\n", result.Mode.Label(), len(result.Items), result.Total)
		for _, it := range result.Items {
			color := it.Color
			if color == "" {
				color = "-"
			}
			fmt.Printf("%-16s %-8s %s  %s\n", it.ID, color, time.UnixMilli(it.ModifiedAt).Format("2006-01-02 15:04"), it.Title)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "list every note")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of notes")
	rootCmd.AddCommand(listCmd)
}
