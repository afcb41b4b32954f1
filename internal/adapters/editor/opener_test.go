package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		onPath   map[string]string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "editor with arguments",
			env:      map[string]string{"EDITOR": "code --wait"},
			wantArgs: []string{"code", "--wait", "/v/n.md"},
		},
		{
			name:     "visual wins over editor",
			env:      map[string]string{"EDITOR": "nano", "VISUAL": "hx"},
			wantArgs: []string{"hx", "/v/n.md"},
		},
		{
			name:     "dedicated variable wins",
			env:      map[string]string{"EDITOR": "nano", "STICKIES_EDITOR": "micro"},
			wantArgs: []string{"micro", "/v/n.md"},
		},
		{
			name:     "falls back to path lookup",
			onPath:   map[string]string{"vi": "/usr/bin/vi"},
			wantArgs: []string{"/usr/bin/vi", "/v/n.md"},
		},
		{
			name:    "nothing available",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &Opener{
				lookEnv: func(k string) string { return tt.env[k] },
				lookPath: func(name string) (string, error) {
					if p, ok := tt.onPath[name]; ok {
						return p, nil
					}
					return "", errors.New("not found")
				},
			}

			cmd, err := o.Command("/v/n.md")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if diff := cmp.Diff(tt.wantArgs, cmd.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
