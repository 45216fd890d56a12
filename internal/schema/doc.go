// Package schema builds parameter trees from declared classes.
//
// The Builder walks a class's fields (inherited ones included) and turns each
// into a ParamNode. Object fields recurse into their class, one-argument
// collections and object arrays recurse into their element class, interfaces
// resolve to their single implementation and generic classes carry their
// use-site type arguments down as generic.Bindings.
//
// Key types:
//   - ParamNode: one node of the tree
//   - Location: where a request parameter travels
//   - Builder: the recursive walker
//   - Visited: the set of concrete classes already expanded in one traversal
//
// # Cycle protection
//
// The default SharedVisited policy expands each concrete class at most once
// per traversal, across all branches. The class passed to Build is the root
// and is not itself registered, so a self-referential class shows one nested
// level before the guard cuts it. Interfaces and abstract classes skip the
// shared set and are cut only when they already appear on the current path.
//
// The PathLocal policy guards every class by the current path alone and stops
// at Options.MaxDepth.
package schema
