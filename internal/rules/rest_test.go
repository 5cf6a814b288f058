package rules

import (
	"testing"

	"github.com/dmelim/local-character-sheets/internal/domain/models"
)

func updatesByPath(updates []models.FieldUpdate) map[string]any {
	out := make(map[string]any, len(updates))
	for _, u := range updates {
		out[u.Path] = u.Value
	}
	return out
}

func TestLongRestRestoresHP(t *testing.T) {
	data := map[string]any{
		"hp": map[string]any{
			"current": float64(4),
			"max":     float64(27),
			"temp":    float64(3),
		},
	}

	got := updatesByPath(LongRestUpdates(data))
	if got["hp.current"] != float64(27) {
		t.Errorf("hp.current = %v, want 27", got["hp.current"])
	}
	if got["hp.temp"] != float64(0) {
		t.Errorf("hp.temp = %v, want 0", got["hp.temp"])
	}
}

func TestLongRestSkipsAbsentSections(t *testing.T) {
	data := map[string]any{
		"identity": map[string]any{"level": float64(3)},
	}

	if got := LongRestUpdates(data); len(got) != 0 {
		t.Errorf("LongRestUpdates() = %v, want no updates", got)
	}
}

func TestLongRestClearsDeathSaves(t *testing.T) {
	data := map[string]any{
		"deathSaves": map[string]any{
			"successes": float64(2),
			"failures":  float64(1),
		},
	}

	got := updatesByPath(LongRestUpdates(data))
	if got["deathSaves.successes"] != float64(0) || got["deathSaves.failures"] != float64(0) {
		t.Errorf("death saves not cleared: %v", got)
	}
}

func TestLongRestResetsOnlyExistingSpellSlotLevels(t *testing.T) {
	data := map[string]any{
		"spellSlots": map[string]any{
			"level1": map[string]any{"total": float64(4), "expended": float64(2)},
			"level3": map[string]any{"total": float64(2), "expended": float64(2)},
		},
	}

	got := updatesByPath(LongRestUpdates(data))
	if got["spellSlots.level1.expended"] != float64(0) {
		t.Errorf("level1 expended = %v, want 0", got["spellSlots.level1.expended"])
	}
	if got["spellSlots.level3.expended"] != float64(0) {
		t.Errorf("level3 expended = %v, want 0", got["spellSlots.level3.expended"])
	}
	if _, ok := got["spellSlots.level2.expended"]; ok {
		t.Error("absent level2 got an update")
	}
}

func TestLongRestHitDice(t *testing.T) {
	tests := []struct {
		name  string
		max   any
		spent any
		want  any
	}{
		{name: "numbers", max: float64(8), spent: float64(6), want: float64(2)},
		{name: "regain at least one", max: float64(1), spent: float64(1), want: float64(0)},
		{name: "clamped at zero", max: float64(10), spent: float64(2), want: float64(0)},
		{name: "string encoding preserved", max: "8", spent: "6", want: "2"},
		{name: "mixed encodings follow spent", max: float64(4), spent: "3", want: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := map[string]any{
				"hitDice": map[string]any{"max": tt.max, "spent": tt.spent},
			}
			got := updatesByPath(LongRestUpdates(data))
			if got["hitDice.spent"] != tt.want {
				t.Errorf("hitDice.spent = %v (%T), want %v (%T)",
					got["hitDice.spent"], got["hitDice.spent"], tt.want, tt.want)
			}
		})
	}
}

func TestLongRestIgnoresUnparseableHitDice(t *testing.T) {
	data := map[string]any{
		"hitDice": map[string]any{"max": "4d8", "spent": float64(2)},
	}

	got := updatesByPath(LongRestUpdates(data))
	if _, ok := got["hitDice.spent"]; ok {
		t.Errorf("hitDice.spent updated despite unparseable max: %v", got)
	}
}
