// Package models defines the Yoto card documents, upload pipeline values, and persisted entities used by yotoup.
//
// The package contains two categories of types:
//
// 1. Remote documents: JSON shapes exchanged with the Yoto API
//   - [Card] : A card with its content chapters and media metadata
//   - [Chapter] and [Track] : The playable structure inside a card
//   - [UploadTarget] : A one-time upload URL and its correlation id
//   - [TranscodeResult] : The server-side transcode outcome polled for after upload
//
// Remote documents keep any JSON field they don't model so that a card read from the API can be written back
// without dropping data the client doesn't know about.
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [UploadRecord] : An upload pipeline run with its status and outcome
//
// All persistent entities implement the Model interface providing ID generation, timestamps, and validation.
// The Repository[T] interface defines standard CRUD operations for database access.
package models
