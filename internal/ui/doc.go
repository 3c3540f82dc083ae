// Package ui renders the interactive surfaces of sweep: a bubbletea-based
// multi-select checklist for choosing branches and a console logger that
// narrates git command lifecycle events in human-readable form.
package ui
