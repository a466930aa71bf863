// Package quirks contains the behavioral variants of CHIP-8 interpreters.
//
// Historical interpreters disagree on the semantics of several base opcodes.
// Every difference is exposed as a named toggle instead of picking one
// behavior, since no single choice is compatible with all existing ROMs.
package quirks

import (
	"fmt"
	"sort"
	"strings"
)

// Quirks contains all behavioral toggles consulted by the executor.
// The zero value is not the default, use Default or a preset.
type Quirks struct {
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY into VX instead of shifting VX in place.
	ShiftUsesVY bool
	// LoadStoreIncrementsI makes FX55 and FX65 leave I pointing after the last register.
	LoadStoreIncrementsI bool
	// JumpWithOffsetUsesVX makes BNNN jump to XNN + VX instead of NNN + V0.
	JumpWithOffsetUsesVX bool
	// ClipSpritesAtEdges drops sprite pixels past the display edges instead of wrapping them.
	ClipSpritesAtEdges bool
	// AddToIndexSetsVFOnOverflow makes FX1E set VF to 1 when I overflows 0xFFF, else 0.
	AddToIndexSetsVFOnOverflow bool
	// ResetVFOnLogicOps makes 8XY1, 8XY2 and 8XY3 set VF to 0.
	ResetVFOnLogicOps bool
	// WaitKeyOnRelease makes FX0A complete on key release instead of key press.
	WaitKeyOnRelease bool
}

// Default returns the quirks of the original COSMAC VIP interpreter.
func Default() Quirks {
	return Quirks{
		ShiftUsesVY:          true,
		LoadStoreIncrementsI: true,
		ClipSpritesAtEdges:   true,
		ResetVFOnLogicOps:    true,
	}
}

// Preset names.
const (
	Chip8  = "chip8"
	Chip48 = "chip48"
	SChip  = "schip"
)

var presets = map[string]func() Quirks{
	Chip8: Default,
	Chip48: func() Quirks {
		return Quirks{
			JumpWithOffsetUsesVX: true,
			ClipSpritesAtEdges:   true,
		}
	},
	// SUPER-CHIP 1.1 kept the CHIP-48 behavior of the base opcodes
	SChip: func() Quirks {
		return Quirks{
			JumpWithOffsetUsesVX: true,
			ClipSpritesAtEdges:   true,
		}
	},
}

// toggle describes a quirk that can be switched on the command line.
type toggle struct {
	field       func(q *Quirks) *bool
	description string
}

var toggles = map[string]toggle{
	"shift": {
		field:       func(q *Quirks) *bool { return &q.ShiftUsesVY },
		description: "8XY6/8XYE shift VY into VX",
	},
	"memory": {
		field:       func(q *Quirks) *bool { return &q.LoadStoreIncrementsI },
		description: "FX55/FX65 increment I",
	},
	"jump": {
		field:       func(q *Quirks) *bool { return &q.JumpWithOffsetUsesVX },
		description: "BXNN jumps to XNN + VX",
	},
	"clip": {
		field:       func(q *Quirks) *bool { return &q.ClipSpritesAtEdges },
		description: "clip sprites at the display edges",
	},
	"indexoverflow": {
		field:       func(q *Quirks) *bool { return &q.AddToIndexSetsVFOnOverflow },
		description: "FX1E sets VF on I overflow",
	},
	"vfreset": {
		field:       func(q *Quirks) *bool { return &q.ResetVFOnLogicOps },
		description: "8XY1/8XY2/8XY3 reset VF",
	},
	"keyrelease": {
		field:       func(q *Quirks) *bool { return &q.WaitKeyOnRelease },
		description: "FX0A waits for key release",
	},
}

// Preset returns the quirks of a named preset.
func Preset(name string) (Quirks, error) {
	fn, ok := presets[strings.ToLower(name)]
	if !ok {
		return Quirks{}, fmt.Errorf("unsupported quirks preset '%s'. Valid options: %s",
			name, strings.Join(PresetNames(), ", "))
	}
	return fn(), nil
}

// PresetNames returns the sorted names of all presets.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse builds quirks from a comma separated list. An optional preset name
// comes first, followed by toggles prefixed with + to enable or - to disable,
// for example "schip,-clip,+vfreset". An empty string returns Default.
func Parse(s string) (Quirks, error) {
	q := Default()
	s = strings.TrimSpace(s)
	if s == "" {
		return q, nil
	}

	for i, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		if part[0] != '+' && part[0] != '-' {
			if i != 0 {
				return Quirks{}, fmt.Errorf("preset '%s' has to be the first element", part)
			}
			preset, err := Preset(part)
			if err != nil {
				return Quirks{}, err
			}
			q = preset
			continue
		}

		t, ok := toggles[part[1:]]
		if !ok {
			return Quirks{}, fmt.Errorf("unsupported quirk '%s'", part[1:])
		}
		*t.field(&q) = part[0] == '+'
	}

	return q, nil
}

// Usage returns a description of all toggles for command line help output.
func Usage() string {
	names := make([]string, 0, len(toggles))
	for name := range toggles {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "  %-14s %s\n", name, toggles[name].description)
	}
	return sb.String()
}

// String returns the enabled toggles in a form accepted by Parse.
func (q Quirks) String() string {
	names := make([]string, 0, len(toggles))
	for name, t := range toggles {
		value := *t.field(&q)
		if value {
			names = append(names, "+"+name)
		} else {
			names = append(names, "-"+name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return names[i][1:] < names[j][1:]
	})
	return strings.Join(names, ",")
}
