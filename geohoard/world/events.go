package world

import "time"

// Severity classifies an event for the presentation layer's log styling.
type Severity string

const (
	SeverityGood    Severity = "good"
	SeverityBad     Severity = "bad"
	SeverityNeutral Severity = "neutral"
)

// Event is a short log-worthy game occurrence (restock, purchase, meteor
// phase change, destruction).
type Event struct {
	Time     time.Time `json:"time"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
}

// maxEvents bounds the in-memory event log; older entries fall off.
const maxEvents = 20

// appendEvent records an event, newest first. Caller must hold the lock.
func (s *Store) appendEvent(message string, severity Severity) {
	s.events = append([]Event{{
		Time:     s.now(),
		Message:  message,
		Severity: severity,
	}}, s.events...)
	if len(s.events) > maxEvents {
		s.events = s.events[:maxEvents]
	}
}
