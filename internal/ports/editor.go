package ports

import "os/exec"

// EditorOpener opens a note in an external editor
type EditorOpener interface {
	// OpenFile opens the note at path and waits for the editor to exit
	OpenFile(path string) error

	// Command returns an exec.Cmd for the editor, for use with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
