package asmbe

import "fmt"

// SlotSize is the width of one frame slot in bytes.
const SlotSize = 8

// Slot describes where a variable lives in the stack frame.
type Slot struct {
	Name   string
	Index  int // allocation order, starting at 0
	Offset int // bytes below rbp
}

// Operand returns the slot's memory operand, e.g. "qword [rbp-16]".
func (s Slot) Operand() string {
	return fmt.Sprintf("qword [rbp-%d]", s.Offset)
}

// VarTable maps variable names to frame slots. Slots are handed out in
// first-assignment order and never reused within one table.
type VarTable struct {
	slots []Slot
	index map[string]int
}

// NewVarTable creates an empty table
func NewVarTable() *VarTable {
	return &VarTable{index: make(map[string]int)}
}

// Allocate returns the slot for name, creating it if name is new.
func (t *VarTable) Allocate(name string) Slot {
	if i, ok := t.index[name]; ok {
		return t.slots[i]
	}
	i := len(t.slots)
	slot := Slot{Name: name, Index: i, Offset: (i + 1) * SlotSize}
	t.slots = append(t.slots, slot)
	t.index[name] = i
	return slot
}

// Lookup returns the slot for name if it has been allocated.
func (t *VarTable) Lookup(name string) (Slot, bool) {
	i, ok := t.index[name]
	if !ok {
		return Slot{}, false
	}
	return t.slots[i], true
}

// Slots returns every slot in allocation order.
func (t *VarTable) Slots() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots)
	return out
}

// Len returns the number of allocated slots
func (t *VarTable) Len() int {
	return len(t.slots)
}

// FrameSize returns the bytes to reserve below rbp, rounded up to keep
// rsp 16-byte aligned.
func (t *VarTable) FrameSize() int {
	size := len(t.slots) * SlotSize
	return (size + 15) &^ 15
}
