// Package ui implements an interactive terminal form using bubbletea's Elm architecture.
//
// The TUI renders one of four exclusive panels:
//  1. Idle : playlist name and hashtag inputs with a submit control
//  2. Loading : spinner while the backend creates the playlist
//  3. Success : playlist name, added and skipped counts and the playlist link
//  4. Error : the failure message
//
// A history screen lists recent submissions with charmbracelet/bubbles/list.
//
// [panel] implements [tasks.View], so the [tasks.FormController] alone decides which panel is visible.
// Submissions run in a [tea.Cmd]; the panel is guarded by a mutex because the controller writes to it from that goroutine
// while [Model.View] reads it.
//
// Keyboard: tab/shift+tab move between inputs, enter submits, o/c open or copy the link, r resets, esc closes an error,
// ctrl+l shows history, ctrl+c quits.
package ui
