// Package core defines the expression tree shared by every parser layer.
//
// Expr is a closed interface over a fixed set of node types. Dialects that
// need node shapes of their own wrap them in Custom, parameterised by the
// dialect's expression type X. Layers that do not own X treat Custom nodes
// as opaque.
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
package core
