package machine

import (
	"math/rand/v2"

	"github.com/retroenv/retrochip8/internal/quirks"
	"github.com/retroenv/retrogolib/log"
)

// Option configures a machine on creation.
type Option func(m *Machine)

// WithQuirks sets the quirks that the machine starts with.
func WithQuirks(q quirks.Quirks) Option {
	return func(m *Machine) {
		m.quirks = q
	}
}

// WithLogger sets a logger that every executed instruction is traced to
// at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithRandomSeed makes the random instruction deterministic.
func WithRandomSeed(seed uint64) Option {
	return func(m *Machine) {
		m.random = rand.New(rand.NewPCG(seed, seed^randomStream))
	}
}

// randomStream selects the PCG stream for seeded generators.
const randomStream = 0xC8C8C8C8C8C8C8C8
