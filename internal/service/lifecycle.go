package service

import (
	"time"

	"github.com/Pranai222/eventvenue-platform/internal/model"
	"github.com/Pranai222/eventvenue-platform/internal/repository"
)

// Caps on the two independent per-record counters.  Location/time
// edits and reschedules are counted separately; hitting either cap
// permanently blocks the corresponding operation.
const (
	MaxLocationEdits = 2
	MaxReschedules   = 2
)

// RegisterLockedEdit advances a capped edit counter.  It returns the
// new counter value and lock flag, or ErrEditLocked when the record
// is already locked.  The edit that reaches the cap still goes
// through; only later edits are rejected.
func RegisterLockedEdit(editCount int, isLocked bool) (int, bool, error) {
	if isLocked {
		return editCount, true, repository.ErrEditLocked
	}
	editCount++
	return editCount, editCount >= MaxLocationEdits, nil
}

// ScheduleChange captures the before/after of a reschedule so payers
// can be shown exactly what moved.
type ScheduleChange struct {
	OldDate     time.Time
	NewDate     time.Time
	OldTime     *string
	NewTime     *string
	OldLocation string
	NewLocation string
}

// ApplyReschedule mutates the event in place for a reschedule
// request: non-nil fields replace the current schedule, the
// reschedule counter advances, and the pre-first-reschedule snapshot
// is taken once.  Returns the before/after change, or an error when
// the event is cancelled (ErrConflict) or has exhausted its
// reschedules (ErrRescheduleLimit).  The caller persists the result.
func ApplyReschedule(e *model.Event, newDate *time.Time, newTime, newLocation *string, reason string) (*ScheduleChange, error) {
	if e.IsCancelled {
		return nil, repository.ErrConflict
	}
	if e.RescheduleCount >= MaxReschedules {
		return nil, repository.ErrRescheduleLimit
	}

	change := &ScheduleChange{
		OldDate:     e.EventDate,
		OldTime:     e.EventTime,
		OldLocation: e.Location,
	}
	if e.OriginalEventDate == nil {
		d := e.EventDate
		e.OriginalEventDate = &d
	}
	if e.OriginalLocation == nil {
		loc := e.Location
		e.OriginalLocation = &loc
	}
	if newDate != nil {
		e.EventDate = *newDate
	}
	if newTime != nil {
		e.EventTime = newTime
	}
	if newLocation != nil {
		e.Location = *newLocation
	}
	e.RescheduleCount++
	e.WasRescheduled = true
	e.RescheduleReason = &reason

	change.NewDate = e.EventDate
	change.NewTime = e.EventTime
	change.NewLocation = e.Location
	return change, nil
}
