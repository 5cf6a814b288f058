// Package rules holds the pure 5e bookkeeping rules: long-rest recovery and
// derived-stat formulas. Nothing here touches storage or the network.
package rules

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dmelim/local-character-sheets/internal/domain/models"
	"github.com/dmelim/local-character-sheets/internal/pathmap"
)

// LongRestUpdates builds the field updates a long rest applies to a sheet:
// HP back to max, temp HP and death saves cleared, expended spell slots
// reset, and half the hit dice (minimum one) regained. Each section is only
// touched when its parent object exists in the data.
func LongRestUpdates(data map[string]any) []models.FieldUpdate {
	var updates []models.FieldUpdate

	if hasObject(data, "hp") {
		if max, ok := numberAt(data, "hp.max"); ok {
			updates = append(updates, models.FieldUpdate{Path: "hp.current", Value: max})
		}
		updates = append(updates, models.FieldUpdate{Path: "hp.temp", Value: float64(0)})
	}

	if hasObject(data, "deathSaves") {
		updates = append(updates,
			models.FieldUpdate{Path: "deathSaves.successes", Value: float64(0)},
			models.FieldUpdate{Path: "deathSaves.failures", Value: float64(0)},
		)
	}

	if hasObject(data, "spellSlots") {
		for level := 1; level <= 9; level++ {
			levelPath := fmt.Sprintf("spellSlots.level%d", level)
			if !hasObject(data, levelPath) {
				continue
			}
			updates = append(updates, models.FieldUpdate{Path: levelPath + ".expended", Value: float64(0)})
		}
	}

	if hasObject(data, "hitDice") {
		maxRaw, _ := pathmap.Get(data, "hitDice.max")
		spentRaw, _ := pathmap.Get(data, "hitDice.spent")

		max, okMax := parseOptionalNumber(maxRaw)
		spent, okSpent := parseOptionalNumber(spentRaw)
		if okMax && okSpent {
			regain := math.Max(1, math.Floor(max/2))
			next := math.Max(0, math.Floor(spent)-regain)

			// Preserve the stored encoding of hitDice.spent.
			var value any = next
			if _, isString := spentRaw.(string); isString {
				value = strconv.FormatFloat(next, 'f', -1, 64)
			}
			updates = append(updates, models.FieldUpdate{Path: "hitDice.spent", Value: value})
		}
	}

	return updates
}

// hasObject reports whether the path resolves to a nested mapping.
func hasObject(data map[string]any, path string) bool {
	value, ok := pathmap.Get(data, path)
	if !ok {
		return false
	}
	_, isMap := value.(map[string]any)
	return isMap
}

// numberAt returns the finite number stored at path, if any.
func numberAt(data map[string]any, path string) (float64, bool) {
	value, ok := pathmap.Get(data, path)
	if !ok {
		return 0, false
	}
	return asFiniteNumber(value)
}

func asFiniteNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// parseOptionalNumber accepts a finite number or a numeric string, matching
// the loose encodings found in stored sheets.
func parseOptionalNumber(value any) (float64, bool) {
	if n, ok := asFiniteNumber(value); ok {
		return n, true
	}
	str, ok := value.(string)
	if !ok {
		return 0, false
	}
	trimmed := strings.TrimSpace(str)
	if trimmed == "" {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}
