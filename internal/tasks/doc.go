// Package tasks implements the card upload pipeline and the card listing.
//
// # Upload Pipeline
//
// [Uploader.Upload] replaces a card's audio in strict sequence:
//
//  1. Request a pre-signed upload URL
//  2. PUT the audio bytes to it
//  3. Poll the transcode job with [TranscodePoller] until it reports a hash
//  4. Fetch the card, rewrite it with [MutateCard] and save it back
//
// # Progress Reporting
//
// A [ProgressFunc] observes fixed waypoints: 0 when the upload starts, 50 when transcoding starts,
// 50 to 75 while polling, 85 when the card update starts and 100 on completion. A failed run reports
// exactly one event with Err set. [ChannelProgress] adapts a channel for UI layers and never blocks.
//
// # Upload History
//
// The optional [UploadRecorder] (repositories.UploadRepository) stores each run. Recorder errors are
// logged and never fail the upload.
//
// # Local Audio
//
// [OpenAudio] sniffs the file content with mimetype and rejects anything that is not audio.
//
// # Card Listing
//
// [CardLister.List] fetches /content/mine then each card's details concurrently, bounded by an
// errgroup limit and paced by a rate limiter. A failed detail request keeps the summary entry.
package tasks
