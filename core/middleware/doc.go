// Package middleware holds the cross-cutting request handlers shared by the
// serve command.
//
// Two concerns live here, each in its own subpackage:
//
//   - rayid assigns every request a correlation id, honoring an incoming
//     X-Ray-Id header so upstream proxies can propagate their own. The id
//     lands in the request locals and the response header, and the logger's
//     WithRayID helper attaches it to every log line of the request.
//   - auth guards the API group with the key from server.Config; the check
//     is skipped entirely when no key is configured.
//
// The serve command registers rayid first so the request log and the auth
// rejection both carry the correlation id.
package middleware
