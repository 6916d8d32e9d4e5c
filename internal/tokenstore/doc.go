// Package tokenstore persists the NetSuite access token between probe runs
// so the engineer pastes it from the app once, not before every request.
//
// Three backends with different tradeoffs:
//   - File: local filesystem with atomic writes and 0600 permissions
//   - Env: read-only environment variable (token managed externally)
//   - Keyring: OS-native credential storage (macOS Keychain et al.)
//
// `nsdebug token set` requires a writable backend (file or keyring).
package tokenstore
