// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks through one audio replacement:
//  1. [CardListView] : Browse and pick one of the user's cards
//  2. [FormView] : Enter the local audio path and the new card title
//  3. [UploadView] : Follow the pipeline on a progress bar
//  4. [ResultView] : Show the updated card or the failure
//
// Progress events and the final result arrive on a single channel fed by the upload goroutine, so the
// result view never renders before the last progress event was applied.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, tab, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
