// Package services implements the client side of the playlist creation backend.
//
// # Creator Interface
//
// [Creator] is the single operation the form controller depends on. [PlaylistClient] implements it over HTTP.
//
// # Wire Contract
//
// The client POSTs {"playlistName","hashtag"} as application/json and decodes the JSON reply into
// [models.CreatePlaylistResponse]. The backend answers failures with a 500 status and {"success":false,"error":...},
// so the status code is logged but never turned into an error by itself.
//
// # Error Handling
//
// Services use typed errors from shared package:
//   - [shared.ErrNetwork] : the request could not be built, sent or read
//   - [shared.ErrParse] : the body was not valid JSON
//
// # Limits
//
// Requests have no deadline unless a timeout is configured. An optional [rate.Limiter] spaces out submissions.
package services
