package ports

// ObsidianOpener opens a note in the Obsidian app
type ObsidianOpener interface {
	// OpenNote opens a vault-relative note through the obsidian:// URI scheme
	OpenNote(rel string) error
}
