package shell

import "errors"

var (
	// ErrChainLength indicates a state chain whose length does not match its
	// shell list.
	ErrChainLength = errors.New("shell: state chain length does not match shell list")

	// ErrChainCoupling indicates a coupling chain with a triangle-forbidden
	// node: some (previous TotalJ, ShellJ, TotalJ) triple cannot couple.
	ErrChainCoupling = errors.New("shell: inconsistent coupling chain")

	// ErrOccupation indicates a shell occupation outside [0, 2j+1].
	ErrOccupation = errors.New("shell: occupation out of range")

	// ErrStructure indicates two shell sequences that are structurally
	// incompatible (different subshells at the same chain position).
	ErrStructure = errors.New("shell: incompatible shell structures")
)
