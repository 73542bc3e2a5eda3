package scpi

// NewRoot assembles the mandatory common commands and the SCPI-mandated
// SYSTem/STATus subsystems with any device-specific branches into a single
// root node, ready to hand to Dispatch (spec.md §3 "Lifecycle": the tree is
// created once at startup and is immutable).
func NewRoot(device ...*Node) *Node {
	children := append([]*Node{}, Ieee488Tree()...)
	children = append(children, SystemTree(), StatusTree())
	children = append(children, device...)
	return &Node{Children: children}
}
