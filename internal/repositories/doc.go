// Package repositories implements SQLite persistence for the signed-in account's tokens and upload history.
//
// Key Implementations:
//   - [TokenRepository] : OAuth2 token storage keyed by provider, replacing browser local storage
//   - [UploadRepository] : Upload pipeline history with status tracking and soft deletes
//
// Sequence numbers provide stable, human-readable ordering (e.g., upload #15) independent of UUIDs and creation timestamps.
// [NextSequence] bumps the counter row of a <table>_sequence table with UPDATE ... RETURNING.
package repositories
