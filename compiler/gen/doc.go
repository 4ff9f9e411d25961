// Package gen resolves loaded schema descriptors into the typed model
// used for code emission.
//
// The resolution pipeline follows this flow:
//
//	Schema descriptors (compiler/load)
//	        ↓
//	   column + converter resolution
//	        ↓
//	   row-class / column matching
//	        ↓
//	   Graph (resolved model, with diagnostics)
//	        ↓
//	   Writer (scoped code-generation tree)
//	        ↓
//	   Generated code
//
// Resolution never stops at the first problem: every element is
// resolved, findings are collected as diagnostics, and elements with
// errors are carried in the graph marked invalid so the rest of the
// schema still generates.
package gen
