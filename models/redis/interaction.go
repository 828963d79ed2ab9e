package redis

import "time"

/*
 * 'InteractionContext' is the per-interaction state a rendered bot message
 * leaves behind: which session a given message is showing, at which rank it
 * was resolved. Component callbacks (buttons, dropdown) look the context up
 * by the message id instead of going through process-global "last message"
 * variables. Entries expire on their own, a stale message simply falls back
 * to the "#<n>" title parse.
 */
type InteractionContext struct {
	MessageID  string    `json:"message_id"`
	SessionID  uint      `json:"session_id"`
	Rank       int       `json:"rank"`
	RenderedAt time.Time `json:"rendered_at"`
}
