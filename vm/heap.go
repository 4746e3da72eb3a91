package vm

// HandleId indexes an entry in the Heap.
type HandleId int

// Heap is an append-only store for composite values (objects/arrays).
// Ported from original_source's lumi_vm::heap::Heap; no current opcode
// allocates into it,
// but it is kept addressable as the extension point a future array/object
// literal would target, matching heap.rs's own "TODO: add heap management
// logic" marker.
type Heap struct {
	entries []interface{}
}

// NewHeap creates an empty Heap.
func NewHeap() *Heap {
	return &Heap{}
}

// Allocate stores v and returns its handle.
func (h *Heap) Allocate(v interface{}) HandleId {
	h.entries = append(h.entries, v)
	return HandleId(len(h.entries) - 1)
}

// Get returns the entry at id, or false if id is out of range.
func (h *Heap) Get(id HandleId) (interface{}, bool) {
	if int(id) < 0 || int(id) >= len(h.entries) {
		return nil, false
	}
	return h.entries[id], true
}

// Set overwrites the entry at id, if it exists.
func (h *Heap) Set(id HandleId, v interface{}) bool {
	if int(id) < 0 || int(id) >= len(h.entries) {
		return false
	}
	h.entries[id] = v
	return true
}

// Len reports how many entries have been allocated.
func (h *Heap) Len() int {
	return len(h.entries)
}
