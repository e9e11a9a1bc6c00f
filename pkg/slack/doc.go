// Package slack handles both directions of the bot's conversation with
// Slack: it verifies and classifies inbound [interaction payloads], and
// posts, deletes, and replies to messages through the [Web API] and
// per-event response URLs.
//
// [interaction payloads]: https://docs.slack.dev/interactivity/handling-user-interaction
// [Web API]: https://docs.slack.dev/apis/web-api
package slack
