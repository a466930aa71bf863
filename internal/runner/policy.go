package runner

import (
	"fmt"
	"strings"
)

// Policy defines how the runner reacts to errors of the machine.
type Policy int

// Error policies.
const (
	Halt   Policy = iota // stop running and return the error
	Reset                // restart the loaded program
	Ignore               // skip the faulting instruction, this can corrupt the program state
)

var policyNames = map[Policy]string{
	Halt:   "halt",
	Reset:  "reset",
	Ignore: "ignore",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy returns the policy for the given name.
func ParsePolicy(name string) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Halt, nil
	}
	for policy, policyName := range policyNames {
		if policyName == name {
			return policy, nil
		}
	}
	return Halt, fmt.Errorf("unsupported error policy '%s'. Valid options: halt, reset, ignore", name)
}
