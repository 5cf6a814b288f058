package cli

import (
	"testing"

	"github.com/dmelim/local-character-sheets/internal/schema"
)

func TestParseFieldArgs(t *testing.T) {
	s := schema.Default()

	tests := []struct {
		name    string
		args    []string
		want    map[string]any
		wantErr bool
	}{
		{
			name: "typed values",
			args: []string{"identity.level=5", "defense.shield=true", "identity.class=Wizard"},
			want: map[string]any{
				"identity.level": float64(5),
				"defense.shield": true,
				"identity.class": "Wizard",
			},
		},
		{
			name: "empty clears a number",
			args: []string{"identity.level="},
			want: map[string]any{"identity.level": nil},
		},
		{
			name: "value may contain equals",
			args: []string{"features.feats=Sharpshooter (bonus = +10)"},
			want: map[string]any{"features.feats": "Sharpshooter (bonus = +10)"},
		},
		{name: "unknown field", args: []string{"no.such.field=1"}, wantErr: true},
		{name: "missing separator", args: []string{"identity.level"}, wantErr: true},
		{name: "missing path", args: []string{"=5"}, wantErr: true},
		{name: "not a number", args: []string{"identity.level=five"}, wantErr: true},
		{name: "not a boolean", args: []string{"defense.shield=maybe"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates, err := parseFieldArgs(s, tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseFieldArgs() succeeded, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseFieldArgs() error: %v", err)
			}
			if len(updates) != len(tt.want) {
				t.Fatalf("len(updates) = %d, want %d", len(updates), len(tt.want))
			}
			for _, u := range updates {
				want, ok := tt.want[u.Path]
				if !ok {
					t.Errorf("unexpected update path %q", u.Path)
					continue
				}
				if u.Value != want {
					t.Errorf("value at %s = %v (%T), want %v (%T)", u.Path, u.Value, u.Value, want, want)
				}
			}
		})
	}
}
