package leave

import (
	"strings"
	"time"

	"hris-core/internal/attendance"
	"hris-core/internal/calendar"
	leaveerrors "hris-core/internal/leave/errors"

	"github.com/google/uuid"
)

// Transition moves l to target on behalf of actor. Re-issuing the current
// status is a no-op and reports changed=false. The caller persists l.
func Transition(l *Leave, target Status, actor uuid.UUID, reason string, now time.Time) (bool, error) {
	if target == l.Status {
		return false, nil
	}
	if !CanTransition(l.Status, target) {
		return false, leaveerrors.ErrInvalidStatusTransition
	}

	switch target {
	case StatusApproved:
		at := now.UTC()
		l.ApprovedBy = &actor
		l.ApprovedAt = &at
		l.RejectionReason = nil
	case StatusRejected:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return false, leaveerrors.ErrRejectionReasonRequired
		}
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = &reason
	case StatusCancelled:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = nil
	}
	l.Status = target
	return true, nil
}

// ApprovedFragments expands approved requests into one leave fragment per
// covered date inside rng. Other statuses contribute nothing.
func ApprovedFragments(requests []Leave, rng calendar.Range) []attendance.Fragment {
	var out []attendance.Fragment
	for _, r := range requests {
		if r.Status != StatusApproved {
			continue
		}
		p := r.Period()
		if !p.Intersects(rng) {
			continue
		}
		start, end := p.Start, p.End
		if start.Before(rng.Start) {
			start = rng.Start
		}
		if end.After(rng.End) {
			end = rng.End
		}
		for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
			out = append(out, attendance.Fragment{
				EmployeeID: r.EmployeeID.String(),
				Date:       d,
				Status:     string(attendance.RawLeave),
				Source:     attendance.SourceLeave,
			})
		}
	}
	return out
}
