package recouple

import "errors"

var (
	// ErrStructure indicates bra and ket coupling chains that are
	// topologically incompatible (different shell sequences or lengths
	// outside the allowed interacting set). This is a caller bug, not a
	// physical selection rule; callers should treat it as fatal.
	ErrStructure = errors.New("recouple: incompatible bra/ket shell structures")

	// ErrCapacity indicates a coupling chain longer than MaxShells or more
	// simultaneously free positions than the engine's fixed bound. Data
	// this large is never truncated silently.
	ErrCapacity = errors.New("recouple: coupling chain exceeds engine capacity")

	// ErrInteractCount indicates an interacting-shell pattern the drivers
	// do not support: more shells differing than the operator allows, or a
	// leg-coincidence pattern with no factorization over single-shell
	// reduced matrix elements.
	ErrInteractCount = errors.New("recouple: unsupported interacting-shell pattern")

	// ErrShellIndex indicates an interacting-shell position outside the
	// coupling chain.
	ErrShellIndex = errors.New("recouple: interacting shell index out of range")

	// ErrMaxRank indicates an invalid maximum-rank setting (negative or
	// half-integer doubled value).
	ErrMaxRank = errors.New("recouple: invalid maximum rank")
)
