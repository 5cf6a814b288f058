package pathmap

import (
	"reflect"
	"testing"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		root   map[string]any
		path   string
		want   any
		wantOK bool
	}{
		{
			name:   "nested value",
			root:   map[string]any{"a": map[string]any{"b": float64(1)}},
			path:   "a.b",
			want:   float64(1),
			wantOK: true,
		},
		{
			name:   "missing intermediate",
			root:   map[string]any{},
			path:   "a.b",
			wantOK: false,
		},
		{
			name:   "intermediate is not a map",
			root:   map[string]any{"a": "text"},
			path:   "a.b",
			wantOK: false,
		},
		{
			name:   "intermediate is a slice",
			root:   map[string]any{"a": []any{1, 2}},
			path:   "a.b",
			wantOK: false,
		},
		{
			name:   "single segment",
			root:   map[string]any{"a": true},
			path:   "a",
			want:   true,
			wantOK: true,
		},
		{
			name:   "final value is nil",
			root:   map[string]any{"a": map[string]any{"b": nil}},
			path:   "a.b",
			want:   nil,
			wantOK: true,
		},
		{
			name:   "final value is a map",
			root:   map[string]any{"a": map[string]any{"b": map[string]any{}}},
			path:   "a.b",
			want:   map[string]any{},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Get(tt.root, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Get() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Get() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name  string
		root  map[string]any
		path  string
		value any
		want  map[string]any
	}{
		{
			name:  "creates intermediates",
			root:  map[string]any{},
			path:  "a.b.c",
			value: float64(5),
			want:  map[string]any{"a": map[string]any{"b": map[string]any{"c": float64(5)}}},
		},
		{
			name:  "overwrites leaf",
			root:  map[string]any{"a": map[string]any{"b": float64(1)}},
			path:  "a.b",
			value: float64(2),
			want:  map[string]any{"a": map[string]any{"b": float64(2)}},
		},
		{
			name:  "replaces non-map intermediate",
			root:  map[string]any{"a": map[string]any{"b": float64(5)}},
			path:  "a.b.c",
			value: float64(1),
			want:  map[string]any{"a": map[string]any{"b": map[string]any{"c": float64(1)}}},
		},
		{
			name:  "replaces slice intermediate",
			root:  map[string]any{"a": []any{"x"}},
			path:  "a.b",
			value: "y",
			want:  map[string]any{"a": map[string]any{"b": "y"}},
		},
		{
			name:  "top level",
			root:  map[string]any{},
			path:  "a",
			value: true,
			want:  map[string]any{"a": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Set(tt.root, tt.path, tt.value)
			if !reflect.DeepEqual(tt.root, tt.want) {
				t.Errorf("Set() produced %v, want %v", tt.root, tt.want)
			}
		})
	}
}
