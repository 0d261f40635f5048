package autosave

import (
	"fmt"
	"time"
)

// Status derives the textual save status at the given instant. It is a pure
// function of {pending timer state, in-flight write, last successful save}:
//
//	"saving"            a debounced write is pending or in flight
//	"saved just now"    last save completed under a minute ago
//	"saved N minutes ago" / "saved N hours ago"
//	"unsaved"           no save has ever completed
func (p *Pipeline) Status(now time.Time) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.savePending || p.saveInFlight {
		return "saving"
	}
	if !p.everSaved {
		return "unsaved"
	}

	elapsed := now.Sub(p.lastSavedAt)
	switch {
	case elapsed < time.Minute:
		return "saved just now"
	case elapsed < time.Hour:
		m := int(elapsed.Minutes())
		if m == 1 {
			return "saved 1 minute ago"
		}
		return fmt.Sprintf("saved %d minutes ago", m)
	default:
		h := int(elapsed.Hours())
		if h == 1 {
			return "saved 1 hour ago"
		}
		return fmt.Sprintf("saved %d hours ago", h)
	}
}
