package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/decoder"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrochip8/internal/registers"
	"github.com/retroenv/retrochip8/internal/timer"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newRunner(t *testing.T, rom []byte, policy Policy) (*Runner, *machine.Machine) {
	t.Helper()

	m := machine.New()
	assert.NoError(t, m.Load(rom))
	clock, err := timer.NewClock(timer.DefaultInstructionsPerSecond)
	assert.NoError(t, err)
	return New(log.NewTestLogger(t), m, clock, policy), m
}

func TestRunner_RunFrames(t *testing.T) {
	r, m := newRunner(t, []byte{
		0x70, 0x01, // add V0, $01
		0x12, 0x00, // jp $200
	}, Halt)

	assert.NoError(t, r.RunFrames(context.Background(), 10))
	assert.Equal(t, 120, r.Instructions())
	assert.Equal(t, 10, r.Frames())
	assert.Equal(t, byte(60), m.Registers().V[0])
}

func TestRunner_RunFramesTicksTimers(t *testing.T) {
	r, m := newRunner(t, []byte{
		0x60, 0x0A, // ld V0, $0A
		0xF0, 0x15, // ld DT, V0
		0x12, 0x04, // jp $204
	}, Halt)

	assert.NoError(t, r.RunFrames(context.Background(), 4))
	assert.Equal(t, uint8(6), m.Registers().Delay)
}

func TestRunner_PolicyHalt(t *testing.T) {
	r, _ := newRunner(t, []byte{0x00, 0xEE}, Halt)

	err := r.RunFrames(context.Background(), 1)
	assert.True(t, errors.Is(err, registers.ErrStackUnderflow))
	assert.Equal(t, 0, r.Errors())
}

func TestRunner_PolicyReset(t *testing.T) {
	r, m := newRunner(t, []byte{
		0x70, 0x01, // add V0, $01
		0x00, 0xEE, // ret
	}, Reset)

	assert.NoError(t, r.RunFrames(context.Background(), 1))
	assert.Equal(t, 6, r.Errors())
	assert.Equal(t, 6, r.Instructions())
	assert.Equal(t, byte(0), m.Registers().V[0])
}

func TestRunner_PolicyIgnore(t *testing.T) {
	r, m := newRunner(t, []byte{
		0x51, 0x21, // unimplemented
		0x70, 0x01, // add V0, $01
		0x12, 0x04, // jp $204
	}, Ignore)

	assert.NoError(t, r.RunFrames(context.Background(), 1))
	assert.Equal(t, 1, r.Errors())
	assert.Equal(t, 11, r.Instructions())
	assert.Equal(t, byte(1), m.Registers().V[0])
}

func TestRunner_PolicyIgnoreHaltsOnFetchError(t *testing.T) {
	r, m := newRunner(t, []byte{
		0x1F, 0xFF, // jp $FFF
	}, Ignore)

	err := r.RunFrames(context.Background(), 1)
	var fetchErr *machine.FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, uint16(0xFFF), fetchErr.PC)
	assert.True(t, errors.Is(err, memory.ErrOutOfBounds))
	assert.Equal(t, 0, r.Errors())
	assert.Equal(t, 1, r.Instructions())
	assert.Equal(t, uint16(0xFFF), m.Registers().PC)
}

func TestRunner_RunCanceled(t *testing.T) {
	r, _ := newRunner(t, []byte{0x12, 0x00}, Halt)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	err := r.Run(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, r.Instructions() > 0)
}

func TestRunner_RunHalts(t *testing.T) {
	r, _ := newRunner(t, []byte{0x51, 0x21}, Halt)

	err := r.Run(context.Background())
	assert.True(t, errors.Is(err, decoder.ErrUnimplementedOpcode))
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input    string
		expected Policy
		err      bool
	}{
		{"", Halt, false},
		{"halt", Halt, false},
		{"Reset", Reset, false},
		{" ignore ", Ignore, false},
		{"continue", Halt, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			policy, err := ParsePolicy(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, policy)
			assert.Equal(t, policyNames[policy], policy.String())
		})
	}
}

func TestRunner_Advance(t *testing.T) {
	r, m := newRunner(t, []byte{
		0x70, 0x01, // add V0, $01
		0x12, 0x00, // jp $200
	}, Halt)

	assert.NoError(t, r.Advance(time.Second))
	assert.Equal(t, timer.DefaultInstructionsPerSecond, r.Instructions())
	assert.Equal(t, timer.Rate, r.Frames())
	assert.Equal(t, byte(350&0xFF), m.Registers().V[0])
}
