package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stickies/internal/application/commands"
)

var colorWriteBack bool

var colorCmd = &cobra.Command{
	Use:   "color <id> [color]",
	Short: "Tag a note with a color",
	Long: `Tag a note with a color. Omit the color to clear it.

Examples:
  stickies-cli color groceries yellow
  stickies-cli color groceries '#ff8800'
  stickies-cli color groceries`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		color := ""
		if len(args) == 2 {
			color = args[1]
		}

		e := GetEnv()
		writeBack := e.Config.WriteBackColors
		if cmd.Flags().Changed("write-back") {
			writeBack = colorWriteBack
		}

		result, err := commands.NewSetColorCommand(e.Repo, e.Board, args[0], color, writeBack).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	colorCmd.Flags().BoolVar(&colorWriteBack, "write-back", false, "also store the color in the note's frontmatter")
	rootCmd.AddCommand(colorCmd)
}
