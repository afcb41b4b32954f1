package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"stickies/internal/adapters/watcher"
	"stickies/internal/domain"
)

var watchDebounce int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print note changes as they happen",
	Long: `Watch the notes folder and print every created, modified, renamed
or deleted note until interrupted. The manual order is repaired as notes
come and go, as the board would.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := GetEnv()
		w, err := watcher.New(e.Repo, msDuration(watchDebounce))
		if err != nil {
			return err
		}
		defer w.Close()

		fmt.Printf("Watching %s\n", e.Repo.FolderPath())
		for {
			select {
			case <-ctx.Done():
				return nil
			case ch, ok := <-w.Changes():
				if !ok {
					return nil
				}
				e.Board.Apply(ch)
				printChange(ch)
			}
		}
	},
}

func printChange(ch domain.Change) {
	switch ch.Kind {
	case domain.ChangeRenamed:
		fmt.Printf("%-9s %s -> %s\n", ch.Kind, ch.OldPath, ch.Path)
	default:
		fmt.Printf("%-9s %s\n", ch.Kind, ch.Path)
	}
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", int(watcher.DefaultDebounce.Milliseconds()), "debounce window in milliseconds")
	rootCmd.AddCommand(watchCmd)
}
