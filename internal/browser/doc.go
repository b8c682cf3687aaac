// Package browser is trawl's read-only view of a local browser profile.
//
// A Host exposes the three stores the search UI works over:
//
//   - BookmarkTree returns the whole bookmark forest in one call. Folders
//     carry a non-nil Children slice; leaves are bookmarks.
//   - SearchHistory returns up to MaxResults visited pages in host relevance
//     order (most recent visit on Chromium, frecency on Firefox), filtered
//     by the caller's Match predicate.
//   - Cookies returns every cookie in the profile.
//
// Chromium-family browsers (chrome, chromium, edge, brave, vivaldi) keep
// bookmarks in a JSON file and history and cookies in sqlite databases.
// Firefox keeps bookmarks and history in places.sqlite and cookies in
// cookies.sqlite; the profile is located through profiles.ini.
//
// Browsers lock their sqlite files while running, so every read copies the
// database and its -wal and -shm sidecars into a temp dir and opens the copy
// with mode=ro. Nothing under the profile is ever written.
//
// Chromium cookie values are usually encrypted. v10 and v11 values are
// decrypted with AES-CBC keys derived by PBKDF2 from the browser's Safe
// Storage password: the Secret Service keyring (go-keyring, then
// secret-tool or kwallet-query) on Linux, the login keychain on macOS. The
// TRAWL_<BROWSER>_SAFE_STORAGE_PASSWORD variable overrides both. Values
// that cannot be decrypted are still listed with Encrypted set.
//
// Every failure is a *FetchError carrying the Source and a Kind
// (PermissionDenied, Unavailable, Timeout, Malformed) so the UI can show a
// precise status instead of an empty list.
package browser
