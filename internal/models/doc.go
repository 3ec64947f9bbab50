// Package models defines the data exchanged with the playlist creation endpoint and the records kept about it.
//
// The package contains three categories of types:
//
// 1. Form values: [FormInput] holds the trimmed playlist name and hashtag a user submits.
//
// 2. Wire types: [CreatePlaylistRequest] and [CreatePlaylistResponse] mirror the JSON bodies of POST /create_playlist.
//
// 3. State: [ViewState] is the exclusive UI mode and [Submission] is the persisted outcome of one request.
//
// The Repository[T] interface defines the storage operations for persisted models.
package models
