package analytics

import (
	"sort"

	"hris-core/internal/attendance"
	"hris-core/internal/calendar"

	"github.com/shopspring/decimal"
)

// Unassigned labels employees with no department.
const Unassigned = "Unassigned"

type Bucket string

const (
	BucketDaily   Bucket = "daily"
	BucketMonthly Bucket = "monthly"
)

func ParseBucket(v string) (Bucket, bool) {
	switch Bucket(v) {
	case "", BucketDaily:
		return BucketDaily, true
	case BucketMonthly:
		return BucketMonthly, true
	}
	return "", false
}

// Key identifies one employee on one date.
type Key struct {
	EmployeeID string
	Date       calendar.Date
}

type Options struct {
	Bucket Bucket
	// Departments maps employee id to department name. When nil no
	// department grouping is produced.
	Departments map[string]string
}

type StatusCount struct {
	Status attendance.DayStatus `json:"status"`
	Count  int                  `json:"count"`
}

// Tally holds the rate inputs for a set of days.
type Tally struct {
	Present  int `json:"present"`
	HalfDay  int `json:"half_day"`
	Workdays int `json:"workdays"`
}

func (t *Tally) add(s attendance.DayStatus) {
	if !s.CountsAsWorkday() {
		return
	}
	t.Workdays++
	switch s {
	case attendance.DayPresent:
		t.Present++
	case attendance.DayHalfDay:
		t.HalfDay++
	}
}

func (t Tally) Rate() int {
	return Rate(t.Present, t.HalfDay, t.Workdays)
}

type Point struct {
	Label string         `json:"label"`
	Range calendar.Range `json:"range"`
	Rate  int            `json:"rate"`
	Tally
}

type DepartmentRollup struct {
	Department string        `json:"department"`
	Employees  int           `json:"employees"`
	Rate       int           `json:"rate"`
	Tally      Tally         `json:"tally"`
	Breakdown  []StatusCount `json:"breakdown"`
	Series     []Point       `json:"series"`
}

type Rollup struct {
	Range       calendar.Range     `json:"range"`
	Bucket      Bucket             `json:"bucket"`
	Rate        int                `json:"rate"`
	Tally       Tally              `json:"tally"`
	Breakdown   []StatusCount      `json:"breakdown"`
	Series      []Point            `json:"series"`
	Departments []DepartmentRollup `json:"departments,omitempty"`
}

// Rate is round((present + 0.5*halfDay) / workdays * 100), or 0 when there
// are no workdays.
func Rate(present, halfDay, workdays int) int {
	if workdays <= 0 {
		return 0
	}
	attended := decimal.NewFromInt(int64(present)).
		Add(decimal.NewFromInt(int64(halfDay)).Div(decimal.NewFromInt(2)))
	return int(attended.
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(workdays))).
		Round(0).
		IntPart())
}

// Aggregate rolls resolved day statuses up over rng. Entries outside rng or
// with an unknown status are ignored.
func Aggregate(statuses map[Key]attendance.DayStatus, rng calendar.Range, opts Options) Rollup {
	bucket := opts.Bucket
	if bucket == "" {
		bucket = BucketDaily
	}
	buckets := bucketRanges(rng, bucket)

	all := newAccumulator(bucket, buckets)
	var groups map[string]*accumulator
	if opts.Departments != nil {
		groups = make(map[string]*accumulator)
	}

	for key, status := range statuses {
		if !status.Valid() || !rng.Contains(key.Date) {
			continue
		}
		idx := bucketIndex(rng, bucket, key.Date)
		all.add(key.EmployeeID, idx, status)

		if groups != nil {
			dept := opts.Departments[key.EmployeeID]
			if dept == "" {
				dept = Unassigned
			}
			g, ok := groups[dept]
			if !ok {
				g = newAccumulator(bucket, buckets)
				groups[dept] = g
			}
			g.add(key.EmployeeID, idx, status)
		}
	}

	out := Rollup{
		Range:     rng,
		Bucket:    bucket,
		Rate:      all.total.Rate(),
		Tally:     all.total,
		Breakdown: all.breakdown(),
		Series:    all.series(),
	}
	if groups != nil {
		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)
		out.Departments = make([]DepartmentRollup, 0, len(names))
		for _, name := range names {
			g := groups[name]
			out.Departments = append(out.Departments, DepartmentRollup{
				Department: name,
				Employees:  len(g.employees),
				Rate:       g.total.Rate(),
				Tally:      g.total,
				Breakdown:  g.breakdown(),
				Series:     g.series(),
			})
		}
	}
	return out
}

// Breakdown tallies statuses sorted by count descending, then status name.
func Breakdown(statuses map[Key]attendance.DayStatus) []StatusCount {
	counts := make(map[attendance.DayStatus]int)
	for _, s := range statuses {
		if s.Valid() {
			counts[s]++
		}
	}
	return sortedCounts(counts)
}

type accumulator struct {
	bucket    Bucket
	buckets   []calendar.Range
	points    []Tally
	total     Tally
	counts    map[attendance.DayStatus]int
	employees map[string]struct{}
}

func newAccumulator(bucket Bucket, buckets []calendar.Range) *accumulator {
	return &accumulator{
		bucket:    bucket,
		buckets:   buckets,
		points:    make([]Tally, len(buckets)),
		counts:    make(map[attendance.DayStatus]int),
		employees: make(map[string]struct{}),
	}
}

func (a *accumulator) add(employeeID string, idx int, s attendance.DayStatus) {
	a.employees[employeeID] = struct{}{}
	a.counts[s]++
	a.total.add(s)
	if idx >= 0 && idx < len(a.points) {
		a.points[idx].add(s)
	}
}

func (a *accumulator) breakdown() []StatusCount {
	return sortedCounts(a.counts)
}

func (a *accumulator) series() []Point {
	out := make([]Point, len(a.buckets))
	for i, b := range a.buckets {
		label := b.Start.String()
		if a.bucket == BucketMonthly {
			label = b.Start.MonthKey()
		}
		out[i] = Point{Label: label, Range: b, Rate: a.points[i].Rate(), Tally: a.points[i]}
	}
	return out
}

func sortedCounts(counts map[attendance.DayStatus]int) []StatusCount {
	out := make([]StatusCount, 0, len(counts))
	for s, n := range counts {
		if n > 0 {
			out = append(out, StatusCount{Status: s, Count: n})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func bucketRanges(rng calendar.Range, bucket Bucket) []calendar.Range {
	if bucket == BucketMonthly {
		return rng.Months()
	}
	days := rng.Days()
	out := make([]calendar.Range, len(days))
	for i, d := range days {
		out[i] = calendar.Range{Start: d, End: d}
	}
	return out
}

func bucketIndex(rng calendar.Range, bucket Bucket, d calendar.Date) int {
	if bucket == BucketMonthly {
		return (d.Year()-rng.Start.Year())*12 + int(d.Month()) - int(rng.Start.Month())
	}
	return calendar.DaysBetween(rng.Start, d)
}
