// Package eg defines the entity model for Peirce existential graphs.
//
// An existential graph is a tree of contexts rooted at the Sheet of
// Assertion. Each Cut context represents one level of logical negation.
// Predicates live inside contexts and bind their numbered hooks to Lines
// of Identity; a Line of Identity is the equivalence class standing for
// one logical individual. Ligatures are immutable records of the joining
// events that built those equivalence classes.
//
// This package contains the entity types, the registry that owns every
// entity, and the structural helpers (parent lookup, depth, polarity,
// lowest common ancestor) the editor and translator build on. It imports
// nothing internal; all other internal packages import it.
//
// Key design constraints:
//   - The registry is the single owner of entities. Contexts hold only
//     non-owning child id references.
//   - Every entity carries a monotonic creation sequence assigned by the
//     registry. All deterministic ordering (translator variable naming,
//     snapshot encoding) derives from this sequence, never from map
//     iteration order or id text.
//   - Single-threaded. No locks; callers serialize all mutation.
package eg
