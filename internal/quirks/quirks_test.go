package quirks

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDefault(t *testing.T) {
	q := Default()
	assert.True(t, q.ShiftUsesVY)
	assert.True(t, q.LoadStoreIncrementsI)
	assert.False(t, q.JumpWithOffsetUsesVX)
	assert.True(t, q.ClipSpritesAtEdges)
	assert.False(t, q.AddToIndexSetsVFOnOverflow)
	assert.True(t, q.ResetVFOnLogicOps)
	assert.False(t, q.WaitKeyOnRelease)
}

func TestPreset(t *testing.T) {
	q, err := Preset("CHIP8")
	assert.NoError(t, err)
	assert.Equal(t, Default(), q)

	q, err = Preset(SChip)
	assert.NoError(t, err)
	assert.False(t, q.ShiftUsesVY)
	assert.False(t, q.LoadStoreIncrementsI)
	assert.True(t, q.JumpWithOffsetUsesVX)
	assert.False(t, q.ResetVFOnLogicOps)

	_, err = Preset("xochip")
	assert.ErrorContains(t, err, "unsupported quirks preset")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    func() Quirks
		wantErr string
	}{
		{
			name:  "empty returns default",
			input: "",
			want:  Default,
		},
		{
			name:  "preset only",
			input: "chip48",
			want:  presets[Chip48],
		},
		{
			name:  "default with toggles",
			input: "-clip,+indexoverflow",
			want: func() Quirks {
				q := Default()
				q.ClipSpritesAtEdges = false
				q.AddToIndexSetsVFOnOverflow = true
				return q
			},
		},
		{
			name:  "preset with toggles and spaces",
			input: "schip, +vfreset , +keyrelease",
			want: func() Quirks {
				q := presets[SChip]()
				q.ResetVFOnLogicOps = true
				q.WaitKeyOnRelease = true
				return q
			},
		},
		{
			name:    "unknown toggle",
			input:   "+turbo",
			wantErr: "unsupported quirk 'turbo'",
		},
		{
			name:    "preset not first",
			input:   "+clip,schip",
			wantErr: "has to be the first element",
		},
		{
			name:    "unknown preset",
			input:   "megachip",
			wantErr: "unsupported quirks preset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want(), got)
		})
	}
}

func TestQuirks_StringRoundTrip(t *testing.T) {
	q := Default()
	q.WaitKeyOnRelease = true

	s := q.String()
	assert.True(t, strings.Contains(s, "+keyrelease"))
	assert.True(t, strings.Contains(s, "-jump"))

	parsed, err := Parse(s)
	assert.NoError(t, err)
	assert.Equal(t, q, parsed)
}

func TestUsage(t *testing.T) {
	usage := Usage()
	for name := range toggles {
		assert.True(t, strings.Contains(usage, name))
	}
}
