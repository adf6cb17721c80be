package attendance

import (
	"context"
	"fmt"

	"hris-core/internal/calendar"
	"hris-core/internal/holiday"
)

// LeaveFragmentSource expands approved leave requests into leave fragments.
// An empty employeeID covers every employee.
type LeaveFragmentSource interface {
	ApprovedFragments(ctx context.Context, employeeID string, rng calendar.Range) ([]Fragment, error)
}

// Snapshot is everything the resolver needs for a window, fetched once.
type Snapshot struct {
	Range     calendar.Range
	Fragments []Fragment
	Holidays  holiday.Set
}

// ForEmployee returns the fragments belonging to employeeID.
func (s Snapshot) ForEmployee(employeeID string) []Fragment {
	var out []Fragment
	for _, f := range s.Fragments {
		if f.EmployeeID == employeeID {
			out = append(out, f)
		}
	}
	return out
}

// Loader reads stored fragments, approved leave and holidays for a window.
type Loader struct {
	repo     Repository
	holidays holiday.Repository
	leaves   LeaveFragmentSource
}

func NewLoader(repo Repository, holidays holiday.Repository, leaves LeaveFragmentSource) *Loader {
	return &Loader{repo: repo, holidays: holidays, leaves: leaves}
}

func (l *Loader) Load(ctx context.Context, employeeID string, rng calendar.Range) (Snapshot, error) {
	rows, err := l.repo.FindInRange(ctx, employeeID, rng)
	if err != nil {
		return Snapshot{}, fmt.Errorf("load attendance fragments: %w", err)
	}
	frags := Fragments(rows)

	if l.leaves != nil {
		leaveFrags, err := l.leaves.ApprovedFragments(ctx, employeeID, rng)
		if err != nil {
			return Snapshot{}, fmt.Errorf("load approved leave: %w", err)
		}
		frags = append(frags, leaveFrags...)
	}

	var hs []holiday.Holiday
	if l.holidays != nil {
		hs, err = l.holidays.FindInRange(ctx, rng)
		if err != nil {
			return Snapshot{}, fmt.Errorf("load holidays: %w", err)
		}
	}

	return Snapshot{Range: rng, Fragments: frags, Holidays: holiday.NewSet(hs)}, nil
}
