package solver

import (
	"github.com/LdDl/mot-ilp/ilp"
	"github.com/LdDl/mot-ilp/track"
)

// VarMap maps the elements of one variable kind to their model columns.
// Columns are allocated in instantiation order from a counter shared by
// all kinds, so every column belongs to exactly one element.
type VarMap struct {
	kind  Kind
	order []track.Element
	index map[track.Element]ilp.Column
}

// Kind returns the variable kind this map belongs to.
func (vm *VarMap) Kind() Kind {
	return vm.kind
}

// Elements returns the elements in instantiation order.
// Be careful: this is not a copy, but a reference to the internal slice.
func (vm *VarMap) Elements() []track.Element {
	return vm.order
}

// Column returns the model column of an element.
func (vm *VarMap) Column(el track.Element) (ilp.Column, bool) {
	col, ok := vm.index[el]
	return col, ok
}

// Len returns the number of variables of this kind.
func (vm *VarMap) Len() int {
	return len(vm.order)
}
