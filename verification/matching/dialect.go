package matching

import (
	"path/filepath"
	"strings"
)

// Dialect identifies the compiler family that produced a contract artifact. Solidity bytecode carries a
// compiler-appended metadata trailer and may contain unresolved library link placeholders; Vyper bytecode carries
// neither, so its comparisons are plain equality checks.
type Dialect int

const (
	// DialectSolidity describes bytecode emitted by solc or a solc-based toolchain.
	DialectSolidity Dialect = iota

	// DialectVyper describes bytecode emitted by the vyper compiler.
	DialectVyper
)

// DialectFromSourcePath infers the compiler dialect from a contract source file path. A `.vy` extension indicates
// Vyper; any other extension is treated as Solidity.
func DialectFromSourcePath(sourcePath string) Dialect {
	if strings.EqualFold(filepath.Ext(sourcePath), ".vy") {
		return DialectVyper
	}
	return DialectSolidity
}

// String returns the display name of the dialect.
func (d Dialect) String() string {
	if d == DialectVyper {
		return "vyper"
	}
	return "solidity"
}
