// Package git provides the version-control operations reposmith runs on a
// local working copy.
//
// It provides:
//   - Client, the collaborator interface, and GoGitClient, its go-git implementation
//   - Operator, which reports each client call as a result
//   - Pipeline, which stages, commits and pushes outstanding changes
package git
