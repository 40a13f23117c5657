package notify

import "sync"

// Sinks are the output channels a notice can be rendered to.
// Nil sinks are skipped.
type Sinks struct {
	Toast  func(Notice)
	System func(Notice)
	Tone   func()
}

// Notifier dispatches catalog notices to the configured sinks.
type Notifier struct {
	mu      sync.Mutex
	catalog *Catalog
	sinks   Sinks
	gentle  bool
}

// NewNotifier creates a notifier over the given catalog and sinks.
func NewNotifier(catalog *Catalog, sinks Sinks) *Notifier {
	return &Notifier{catalog: catalog, sinks: sinks}
}

// SetGentleMode toggles reduced-stimulus delivery: no audible cue and
// no system notification for informational notices.
func (notifier *Notifier) SetGentleMode(enabled bool) {
	notifier.mu.Lock()
	notifier.gentle = enabled
	notifier.mu.Unlock()
}

// Notify renders the notice registered for the tag.
func (notifier *Notifier) Notify(tag Tag) {
	notifier.mu.Lock()
	notice := notifier.catalog.Lookup(tag)
	sinks := notifier.sinks
	gentle := notifier.gentle
	notifier.mu.Unlock()

	if sinks.Toast != nil {
		sinks.Toast(notice)
	}
	if sinks.System != nil && !(gentle && notice.Level == SeverityInfo) {
		sinks.System(notice)
	}
	if sinks.Tone != nil && notice.Audible && !gentle {
		sinks.Tone()
	}
}
