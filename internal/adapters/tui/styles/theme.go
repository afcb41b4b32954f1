package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")
	Paper     = lipgloss.Color("#D1D5DB") // Uncolored note

	// Base styles
	App = lipgloss.NewStyle().
		Padding(0, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Card styles
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Paper).
		Padding(0, 1)

	CardSelected = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	CardDropTarget = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	CardTitle = lipgloss.NewStyle().
			Bold(true)

	CardMeta = lipgloss.NewStyle().
			Foreground(Muted)

	CardDragged = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Muted text style (for using Muted color as a style)
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// NoteColors lists the color tags in cycling order; "" means untagged
var NoteColors = []string{"", "yellow", "orange", "red", "pink", "purple", "blue", "green", "gray"}

var noteColorValues = map[string]lipgloss.Color{
	"yellow": lipgloss.Color("#FACC15"),
	"orange": lipgloss.Color("#F97316"),
	"red":    lipgloss.Color("#EF4444"),
	"pink":   lipgloss.Color("#EC4899"),
	"purple": lipgloss.Color("#8B5CF6"),
	"blue":   lipgloss.Color("#3B82F6"),
	"green":  lipgloss.Color("#22C55E"),
	"gray":   lipgloss.Color("#9CA3AF"),
}

// NoteColor returns the border color for a color tag. Unknown tags that look like a
// hex color are used as-is.
func NoteColor(tag string) lipgloss.Color {
	if c, ok := noteColorValues[tag]; ok {
		return c
	}
	if len(tag) == 7 && tag[0] == '#' {
		return lipgloss.Color(tag)
	}
	return Paper
}

// NextNoteColor returns the tag following current in NoteColors
func NextNoteColor(current string) string {
	for i, c := range NoteColors {
		if c == current {
			return NoteColors[(i+1)%len(NoteColors)]
		}
	}
	return NoteColors[1]
}
