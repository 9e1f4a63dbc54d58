// Package status tracks the application lifecycle stage of each job.
//
// Unlike a kanban board there is no transition graph: any status can be set
// at any time. History is only written on transitions into Applied, Rejected
// or Selected — reverting to "Not Applied" updates the map silently.
package status

import "fmt"

// Status is a job's user-tracked application stage.
type Status string

const (
	StatusNotApplied Status = "Not Applied"
	StatusApplied    Status = "Applied"
	StatusRejected   Status = "Rejected"
	StatusSelected   Status = "Selected"
)

// All lists every valid status in display order.
var All = []Status{StatusNotApplied, StatusApplied, StatusRejected, StatusSelected}

// Parse converts a raw string to a Status, returning an error for unknown
// values.
func Parse(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNotApplied, StatusApplied, StatusRejected, StatusSelected:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}

// Recorded reports whether a transition into s is written to the history
// log.
func Recorded(s Status) bool {
	switch s {
	case StatusApplied, StatusRejected, StatusSelected:
		return true
	}
	return false
}
