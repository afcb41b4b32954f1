package obsidian

import (
	"fmt"
	"net/url"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// Opener implements ports.ObsidianOpener
type Opener struct {
	vaultName string
	run       func(uri string) error
}

// NewOpener creates a new Obsidian opener for the given vault path
func NewOpener(vaultPath string) *Opener {
	return &Opener{
		vaultName: filepath.Base(filepath.Clean(vaultPath)),
		run:       openURI,
	}
}

// OpenNote opens a vault-relative note in Obsidian
func (o *Opener) OpenNote(rel string) error {
	uri, err := o.BuildURI(rel)
	if err != nil {
		return err
	}
	return o.run(uri)
}

// BuildURI constructs the obsidian:// URI for a vault-relative note path
func (o *Opener) BuildURI(rel string) (string, error) {
	// Obsidian expects forward slashes in paths
	clean := path.Clean(filepath.ToSlash(rel))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("note is outside the vault: %s", rel)
	}

	return fmt.Sprintf("obsidian://open?vault=%s&file=%s",
		escape(o.vaultName),
		escape(clean),
	), nil
}

// escape percent-encodes a query value, spaces included
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func openURI(uri string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", uri)
	case "linux":
		cmd = exec.Command("xdg-open", uri)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", uri)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return cmd.Run()
}
