package filesystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"stickies/internal/domain"
	"stickies/internal/ports"
)

// NoteExt is the extension of sticky note files
const NoteExt = ".md"

// ErrOutsideFolder is returned for paths that escape the notes folder
var ErrOutsideFolder = errors.New("path is outside the notes folder")

// Repository implements ports.NoteRepository using the filesystem
type Repository struct {
	vaultPath string
	folder    string // Vault-relative, slash separated
	now       func() time.Time
}

// Ensure Repository implements NoteRepository
var _ ports.NoteRepository = (*Repository)(nil)

// NewRepository creates a new filesystem repository over folder inside vaultPath
func NewRepository(vaultPath, folder string) *Repository {
	// Expand ~ to home directory
	if strings.HasPrefix(vaultPath, "~") {
		home, _ := os.UserHomeDir()
		vaultPath = filepath.Join(home, vaultPath[1:])
	}
	folder = strings.Trim(filepath.ToSlash(folder), "/")
	return &Repository{vaultPath: vaultPath, folder: folder, now: time.Now}
}

// VaultPath returns the absolute vault path
func (r *Repository) VaultPath() string {
	return r.vaultPath
}

// FolderPath returns the absolute path of the notes folder
func (r *Repository) FolderPath() string {
	return filepath.Join(r.vaultPath, filepath.FromSlash(r.folder))
}

// AbsPath resolves a vault-relative path to an absolute filesystem path
func (r *Repository) AbsPath(rel string) string {
	return filepath.Join(r.vaultPath, filepath.FromSlash(rel))
}

// RelPath converts an absolute path to a vault-relative note path. It reports false for
// anything that is not a note directly inside the notes folder.
func (r *Repository) RelPath(abs string) (string, bool) {
	if filepath.Dir(abs) != r.FolderPath() || !IsNoteFile(filepath.Base(abs)) {
		return "", false
	}
	return path.Join(r.folder, filepath.Base(abs)), true
}

// IsNoteFile reports whether a file name is a visible markdown note
func IsNoteFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), NoteExt) && !strings.HasPrefix(name, ".")
}

// ListNotes returns every note in the notes folder in directory order.
// A missing folder holds no notes.
func (r *Repository) ListNotes(ctx context.Context) ([]domain.Item, error) {
	entries, err := os.ReadDir(r.FolderPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Item{}, nil
		}
		return nil, fmt.Errorf("failed to read notes folder: %w", err)
	}

	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !IsNoteFile(entry.Name()) {
			continue
		}

		item, err := r.LoadNote(ctx, path.Join(r.folder, entry.Name()))
		if err != nil {
			// Deleted between ReadDir and the read.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// LoadNote reads a single note by its vault-relative path
func (r *Repository) LoadNote(ctx context.Context, rel string) (domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return domain.Item{}, err
	}
	abs, err := r.notePath(rel)
	if err != nil {
		return domain.Item{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to stat note: %w", err)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return domain.Item{}, fmt.Errorf("failed to read note: %w", err)
	}

	doc := parseDocument(content)
	name := domain.NameFromPath(rel)
	color, _ := doc.get("color")

	return domain.Item{
		Path:       rel,
		Name:       name,
		Title:      doc.title(),
		Color:      strings.TrimSpace(color),
		CreatedAt:  createdAt(doc, name, info),
		ModifiedAt: info.ModTime().UnixMilli(),
	}, nil
}

// createdAt resolves the creation time: frontmatter "created", then a timestamp file name,
// then the file's modification time
func createdAt(doc document, name string, info fs.FileInfo) int64 {
	if v, ok := doc.get("created"); ok {
		if ms, ok := parseTimestamp(v); ok {
			return ms
		}
	}
	// Notes created by the board are named by their Unix millisecond timestamp.
	if ms, err := strconv.ParseInt(name, 10, 64); err == nil && ms >= 1e12 {
		return ms
	}
	return info.ModTime().UnixMilli()
}

// CreateNote creates an empty note named after the current Unix millisecond timestamp
func (r *Repository) CreateNote(ctx context.Context) (domain.Item, error) {
	if err := os.MkdirAll(r.FolderPath(), 0755); err != nil {
		return domain.Item{}, fmt.Errorf("failed to create notes folder: %w", err)
	}

	now := r.now()
	ms := now.UnixMilli()
	var rel string
	for {
		rel = path.Join(r.folder, strconv.FormatInt(ms, 10)+NoteExt)
		if _, err := os.Stat(r.AbsPath(rel)); errors.Is(err, fs.ErrNotExist) {
			break
		}
		ms++
	}

	content := fmt.Sprintf("---\ncreated: %s\n---\n\n", now.Format(time.RFC3339))
	if err := atomic.WriteFile(r.AbsPath(rel), strings.NewReader(content)); err != nil {
		return domain.Item{}, fmt.Errorf("failed to create note: %w", err)
	}

	return r.LoadNote(ctx, rel)
}

// DeleteNote removes the note at rel
func (r *Repository) DeleteNote(ctx context.Context, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := r.notePath(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

// WriteColor stores color in the note's frontmatter; an empty color removes the key
func (r *Repository) WriteColor(ctx context.Context, rel, color string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := r.notePath(rel)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("failed to read note: %w", err)
	}

	doc := parseDocument(content)
	if current, _ := doc.get("color"); current == color {
		return nil
	}
	doc.set("color", color)

	out, err := doc.bytes()
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(abs, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

// notePath validates rel and returns its absolute path
func (r *Repository) notePath(rel string) (string, error) {
	clean := path.Clean(filepath.ToSlash(rel))
	if path.Dir(clean) != r.folder && !(r.folder == "" && path.Dir(clean) == ".") {
		return "", fmt.Errorf("%w: %s", ErrOutsideFolder, rel)
	}
	return r.AbsPath(clean), nil
}
