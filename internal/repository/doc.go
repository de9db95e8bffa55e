// Package repository orchestrates the lifecycle of a repository that lives
// in three stores at once: a local directory, a local git working copy and a
// hosted GitHub repository.
//
// Every operation returns a result tree. The orchestrator declares each
// outcome explicitly from the results of the steps it ran; it never infers
// an outcome from its children.
package repository
