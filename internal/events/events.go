package events

import "github.com/basetic/osint-terminal/internal/store"

// Kind discriminates bus events.
type Kind string

const (
	// KindStorageChanged signals that a persisted collection was rewritten.
	KindStorageChanged Kind = "storage.changed"
	// KindNotice carries a transient user-facing notification.
	KindNotice Kind = "notice"
	// KindNoticeCleared signals that a notice auto-dismissed.
	KindNoticeCleared Kind = "notice.cleared"
)

// Level classifies a notice for presentation.
type Level string

const (
	// LevelInfo is an informational notice.
	LevelInfo Level = "info"
	// LevelError is a blocking failure notice.
	LevelError Level = "error"
)

// Notice is a transient user-facing notification. Notices auto-dismiss after
// the bus's configured delay.
type Notice struct {
	ID      string `json:"id"`
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Event is the envelope delivered to subscribers.
type Event struct {
	Kind   Kind      `json:"kind"`
	Key    store.Key `json:"key,omitempty"`    // set for storage changes
	Origin string    `json:"origin,omitempty"` // set for storage changes
	Notice *Notice   `json:"notice,omitempty"` // set for notices
}
