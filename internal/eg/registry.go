package eg

import "sort"

// SheetID is the fixed, well-known id of the Sheet of Assertion.
const SheetID = "SA"

// Registry is the single id→entity map owning every graph entity.
// It is constructed with the Sheet of Assertion pre-registered under
// SheetID. Lifetime is one editing session.
//
// Every Add stamps the entity with a monotonic creation sequence; the
// sequence is the deterministic ordering used throughout (translator
// variable naming, snapshot encoding).
type Registry struct {
	objects map[string]Object
	seq     map[string]int64
	nextSeq int64
}

// NewRegistry builds a registry holding only the Sheet of Assertion.
func NewRegistry() *Registry {
	r := &Registry{
		objects: make(map[string]Object),
		seq:     make(map[string]int64),
	}
	// The sheet is always entity #0.
	if err := r.Add(&Context{OID: SheetID}); err != nil {
		panic(err) // empty registry cannot hold a duplicate
	}
	return r
}

// Sheet returns the Sheet of Assertion.
func (r *Registry) Sheet() *Context {
	return r.objects[SheetID].(*Context)
}

// Add registers obj. Fails with a StructuralError if the id is taken.
func (r *Registry) Add(obj Object) error {
	if _, exists := r.objects[obj.ID()]; exists {
		return NewStructuralError(ErrCodeDuplicateID, "entity id already registered: "+obj.ID())
	}
	r.objects[obj.ID()] = obj
	r.seq[obj.ID()] = r.nextSeq
	r.nextSeq++
	return nil
}

// Get returns the entity under id, or nil on miss.
func (r *Registry) Get(id string) Object {
	return r.objects[id]
}

// Remove deletes the entity under id. No-op on miss.
func (r *Registry) Remove(id string) {
	delete(r.objects, id)
	delete(r.seq, id)
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	return len(r.objects)
}

// Seq returns the creation sequence of id, or -1 if unregistered.
func (r *Registry) Seq(id string) int64 {
	if s, ok := r.seq[id]; ok {
		return s
	}
	return -1
}

// Context returns the context under id, or nil if absent or not a context.
func (r *Registry) Context(id string) *Context {
	ctx, _ := r.objects[id].(*Context)
	return ctx
}

// Predicate returns the predicate under id, or nil if absent or not one.
func (r *Registry) Predicate(id string) *Predicate {
	p, _ := r.objects[id].(*Predicate)
	return p
}

// Line returns the line of identity under id, or nil if absent or not one.
func (r *Registry) Line(id string) *LineOfIdentity {
	l, _ := r.objects[id].(*LineOfIdentity)
	return l
}

// Ligature returns the ligature under id, or nil if absent or not one.
func (r *Registry) Ligature(id string) *Ligature {
	g, _ := r.objects[id].(*Ligature)
	return g
}

// All returns every registered entity in creation order. The slice is a
// snapshot; mutating the registry does not invalidate it.
func (r *Registry) All() []Object {
	objs := make([]Object, 0, len(r.objects))
	for _, obj := range r.objects {
		objs = append(objs, obj)
	}
	sort.Slice(objs, func(i, j int) bool {
		return r.seq[objs[i].ID()] < r.seq[objs[j].ID()]
	})
	return objs
}

// Predicates returns every predicate in creation order.
func (r *Registry) Predicates() []*Predicate {
	var preds []*Predicate
	for _, obj := range r.All() {
		if p, ok := obj.(*Predicate); ok {
			preds = append(preds, p)
		}
	}
	return preds
}

// SortByCreation orders ids in place by creation sequence. Unregistered
// ids sort first; ties cannot occur among registered entities.
func (r *Registry) SortByCreation(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		return r.Seq(ids[i]) < r.Seq(ids[j])
	})
}
