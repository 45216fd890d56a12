// Package diagnostic provides structured errors, warnings and infos for the
// source adapters.
//
// Loading a project never stops at one bad file: unreadable files, syntax
// errors and package load problems are recorded here and loading continues
// with what could be read.
package diagnostic
