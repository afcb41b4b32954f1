package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stickies/internal/adapters/editor"
	"stickies/internal/application/commands"
)

var createEdit bool

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an empty note",
	Long: `Create an empty note named after the current time.

Examples:
  stickies-cli create
  stickies-cli create --edit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := GetEnv()
		result, err := commands.NewCreateNoteCommand(e.Repo, e.Board).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)

		if createEdit {
			return editor.NewOpener().OpenFile(e.Repo.AbsPath(result.Item.Path))
		}
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVarP(&createEdit, "edit", "e", false, "open the new note in $EDITOR")
	rootCmd.AddCommand(createCmd)
}
