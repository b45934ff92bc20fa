// Package acceptance runs the Gherkin scenarios under features/ against the
// full HTTP stack backed by the bundled catalog and in-memory cart storage.
package acceptance
