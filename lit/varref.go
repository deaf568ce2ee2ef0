// Package lit provides the literal algebra that the rest of the module
// builds on: dense variable references, packed variable-bound indices,
// sign-normalized bound values, and the literals built from them.
//
// Everything here is a value type (no pointers, no allocation beyond the
// occasional slice) so that domain stores and propagators can use literals
// as map keys and dense table indices without indirection.
package lit

import "fmt"

// VarRef is a dense, non-negative identifier for a variable. Dense means
// a VarRef is suitable as an index into a slice-backed table: the i-th
// variable created occupies index i.
type VarRef int32

// ZERO is a reserved variable with domain [0, 0]. Its bounds double as the
// boolean constants TRUE/FALSE: "ZERO <= 0" is always true, "ZERO > 0" is
// always false.
const ZERO VarRef = 0

// String renders the variable as "v<id>", or "ZERO" for the reserved
// constant variable.
func (v VarRef) String() string {
	if v == ZERO {
		return "ZERO"
	}
	return fmt.Sprintf("v%d", int32(v))
}
