// Package tasks drives one form submission at a time against the playlist creation endpoint.
//
// # Form Controller
//
// [FormController] owns the exclusive view state and exposes three handlers:
//
//  1. [FormController.OnSubmit] : Idle → Loading → Success | Error
//     - Reads and trims the playlist name and hashtag from the [View]
//     - Empty fields raise a blocking alert; nothing else changes
//     - Disables the submit control, issues exactly one request, then re-enables it
//
//  2. [FormController.OnReset] : Success → Idle, clearing the fields
//
//  3. [FormController.OnCloseError] : Error → Idle, keeping the fields
//
// # View Abstraction
//
// The [View] interface stands in for whatever renders the four panels (the TUI in internal/ui, the console view in cmd).
// The controller is the only writer of view state, so views never decide transitions themselves.
//
// # Submission History
//
// The optional [Recorder] interface receives every settled request (repositories.SubmissionRepository).
// Recording errors are logged and never change what the user sees.
package tasks
