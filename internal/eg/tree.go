package eg

// ParentOf returns the id of the context whose child set contains id,
// or "" if no context claims it (the sheet itself, or a detached
// entity such as a line or ligature).
//
// Lookup scans every context's child set. Acceptable for the graph
// sizes a human edits; an explicit parent index would preserve the
// same contract if this ever shows up in a profile.
func (r *Registry) ParentOf(id string) string {
	for _, obj := range r.objects {
		if ctx, ok := obj.(*Context); ok && ctx.HasChild(id) {
			return ctx.OID
		}
	}
	return ""
}

// Depth returns the number of parent hops from the context id to the
// Sheet of Assertion. The sheet has depth 0.
func (r *Registry) Depth(id string) int {
	depth := 0
	current := id
	for current != "" && current != SheetID {
		parent := r.ParentOf(current)
		if parent == "" {
			break
		}
		depth++
		current = parent
	}
	return depth
}

// IsPositive reports whether the context sits at even depth. Positive
// contexts admit erasure; negative contexts admit insertion.
func (r *Registry) IsPositive(id string) bool {
	return r.Depth(id)%2 == 0
}

// IsNegative reports whether the context sits at odd depth.
func (r *Registry) IsNegative(id string) bool {
	return !r.IsPositive(id)
}

// Ancestors returns the chain from id up to the root, inclusive of id.
func (r *Registry) Ancestors(id string) []string {
	var chain []string
	current := id
	for current != "" {
		chain = append(chain, current)
		current = r.ParentOf(current)
	}
	return chain
}

// LCA returns the lowest common ancestor context of the given context
// ids, or "" for an empty input. The result is the deepest context
// present on every ancestor chain.
func (r *Registry) LCA(contextIDs []string) string {
	if len(contextIDs) == 0 {
		return ""
	}
	common := r.Ancestors(contextIDs[0])
	for _, id := range contextIDs[1:] {
		chain := r.Ancestors(id)
		member := make(map[string]struct{}, len(chain))
		for _, c := range chain {
			member[c] = struct{}{}
		}
		filtered := common[:0]
		for _, c := range common {
			if _, ok := member[c]; ok {
				filtered = append(filtered, c)
			}
		}
		common = filtered
	}
	if len(common) == 0 {
		return ""
	}
	return common[0]
}
