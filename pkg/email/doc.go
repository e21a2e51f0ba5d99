// Package email provides a provider-agnostic interface for sending
// transactional emails with attachments.
//
// The package is built around the Sender interface so providers can be
// swapped without touching application code. Two implementations exist:
//
//   - postmarkClient delivers through Postmark's transactional API
//     (NewPostmarkClient) and maps attachments to its base64 format.
//   - DevSender writes messages to disk for local development, and serves
//     as the fallback when Postmark credentials are absent so the
//     application still starts; sends then fail visibly in the saved-file
//     sense rather than invisibly.
//
// All implementations validate parameters before sending. Failures wrap
// the package sentinels (ErrInvalidParams, ErrInvalidConfig,
// ErrFailedToSendEmail) and are checkable with errors.Is.
package email
