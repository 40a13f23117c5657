// Package notify maps a closed set of notice tags to fixed user-facing
// payloads and dispatches them as toasts and system notifications.
package notify

import "fmt"

// Tag identifies a user-facing notice.
type Tag string

const (
	TagSessionStarted   Tag = "session_started"
	TagSessionCompleted Tag = "session_completed"
	TagCheckinSaved     Tag = "checkin_saved"
	TagCheckinReminder  Tag = "checkin_reminder"
	TagStrategyTried    Tag = "strategy_tried"
	TagUnauthorized     Tag = "unauthorized"
	TagForbidden        Tag = "forbidden"
	TagServerError      Tag = "server_error"
	TagRequestFailed    Tag = "request_failed"
	TagGenericError     Tag = "generic_error"
)

// Severity grades how prominently a notice is shown.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// Notice is the fixed payload attached to a tag.
type Notice struct {
	Title   string
	Body    string
	Level   Severity
	Audible bool
}

// tags lists every tag the catalog must cover.
var tags = []Tag{
	TagSessionStarted,
	TagSessionCompleted,
	TagCheckinSaved,
	TagCheckinReminder,
	TagStrategyTried,
	TagUnauthorized,
	TagForbidden,
	TagServerError,
	TagRequestFailed,
	TagGenericError,
}

// Catalog holds the tag-to-notice mapping, validated for exhaustiveness.
type Catalog struct {
	notices map[Tag]Notice
}

// NewCatalog builds the default catalog. It returns an error if any
// known tag is left without a payload.
func NewCatalog() (*Catalog, error) {
	return newCatalog(map[Tag]Notice{
		TagSessionStarted: {
			Title: "Focus session started",
			Body:  "You've got this. The timer is running.",
			Level: SeverityInfo,
		},
		TagSessionCompleted: {
			Title:   "Session complete",
			Body:    "Well done. Take a moment before your next step.",
			Level:   SeverityInfo,
			Audible: true,
		},
		TagCheckinSaved: {
			Title: "Check-in saved",
			Body:  "Thanks for checking in with yourself.",
			Level: SeverityInfo,
		},
		TagCheckinReminder: {
			Title: "Gentle reminder",
			Body:  "How are you feeling right now? A quick check-in helps.",
			Level: SeverityInfo,
		},
		TagStrategyTried: {
			Title: "Nice work",
			Body:  "Strategy marked as tried.",
			Level: SeverityInfo,
		},
		TagUnauthorized: {
			Title: "Signed out",
			Body:  "Your session has expired. Please sign in again.",
			Level: SeverityWarning,
		},
		TagForbidden: {
			Title: "Not allowed",
			Body:  "You don't have access to that right now.",
			Level: SeverityWarning,
		},
		TagServerError: {
			Title: "Something went wrong",
			Body:  "The server had trouble with that request. Please try again later.",
			Level: SeverityError,
		},
		TagRequestFailed: {
			Title: "Couldn't reach the server",
			Body:  "Your data is kept locally and will not be lost.",
			Level: SeverityWarning,
		},
		TagGenericError: {
			Title: "An error occurred",
			Body:  "Something unexpected happened. You can keep using the app.",
			Level: SeverityError,
		},
	})
}

func newCatalog(notices map[Tag]Notice) (*Catalog, error) {
	for _, tag := range tags {
		if _, ok := notices[tag]; !ok {
			return nil, fmt.Errorf("notify: no notice defined for tag %q", tag)
		}
	}
	for tag := range notices {
		if !knownTag(tag) {
			return nil, fmt.Errorf("notify: notice defined for unknown tag %q", tag)
		}
	}
	return &Catalog{notices: notices}, nil
}

func knownTag(tag Tag) bool {
	for _, known := range tags {
		if tag == known {
			return true
		}
	}
	return false
}

// TagForStatus maps a failed HTTP status to its fixed notice tag.
func TagForStatus(status int) Tag {
	switch status {
	case 401:
		return TagUnauthorized
	case 403:
		return TagForbidden
	case 500:
		return TagServerError
	default:
		return TagRequestFailed
	}
}

// Lookup returns the notice for a tag. Unknown tags fall back to the
// generic error notice.
func (catalog *Catalog) Lookup(tag Tag) Notice {
	if notice, ok := catalog.notices[tag]; ok {
		return notice
	}
	return catalog.notices[TagGenericError]
}
