// Package runtime assembles the collaborators a command needs from the
// configuration: logging, the GitHub and git clients, and the repository
// orchestrator.
package runtime
