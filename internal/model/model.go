package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type Day int

const (
	Mon Day = iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

var dayLabels = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

const (
	FirstHour = 8
	LastHour  = 19

	DaysPerWeek = len(dayLabels)
	HoursPerDay = LastHour - FirstHour + 1

	// CellCount is the number of addressable slots in the grid.
	CellCount = DaysPerWeek * HoursPerDay
)

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayLabels[d]
}

func (d Day) Valid() bool {
	return d >= Mon && d <= Sun
}

// ParseDay accepts the three-letter label in any case ("mon", "MON", "Mon").
func ParseDay(s string) (Day, error) {
	s = strings.TrimSpace(s)
	for i, label := range dayLabels {
		if strings.EqualFold(s, label) {
			return Day(i), nil
		}
	}
	return 0, fmt.Errorf("invalid day: %q", s)
}

// Days returns the fixed day columns in display order.
func Days() []Day {
	out := make([]Day, DaysPerWeek)
	for i := range out {
		out[i] = Day(i)
	}
	return out
}

// Hours returns the fixed hour rows in display order (8 through 19).
func Hours() []int {
	out := make([]int, HoursPerDay)
	for i := range out {
		out[i] = FirstHour + i
	}
	return out
}

func ValidHour(h int) bool {
	return h >= FirstHour && h <= LastHour
}

// SlotKey identifies one (day, hour) cell. It is comparable and used directly as a map key.
type SlotKey struct {
	Day  Day
	Hour int
}

func Slot(d Day, hour int) SlotKey {
	return SlotKey{Day: d, Hour: hour}
}

func (k SlotKey) Valid() bool {
	return k.Day.Valid() && ValidHour(k.Hour)
}

// String returns the wire form, e.g. "Mon-9".
func (k SlotKey) String() string {
	return k.Day.String() + "-" + strconv.Itoa(k.Hour)
}

// Label returns the human form used in tooltips, e.g. "Mon, 9:00".
func (k SlotKey) Label() string {
	return fmt.Sprintf("%s, %d:00", k.Day, k.Hour)
}

func ParseSlotKey(s string) (SlotKey, error) {
	dayPart, hourPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return SlotKey{}, fmt.Errorf("invalid slot key: %q", s)
	}
	d, err := ParseDay(dayPart)
	if err != nil {
		return SlotKey{}, fmt.Errorf("invalid slot key %q: %w", s, err)
	}
	h, err := ParseHour(hourPart)
	if err != nil {
		return SlotKey{}, fmt.Errorf("invalid slot key %q: %w", s, err)
	}
	return SlotKey{Day: d, Hour: h}, nil
}

// ParseHour accepts "9", "09" and "9:00".
func ParseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ":00")
	h, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid hour: %q", s)
	}
	if !ValidHour(h) {
		return 0, fmt.Errorf("hour out of range (%d-%d): %d", FirstHour, LastHour, h)
	}
	return h, nil
}

// SlotAt maps a row-major cell index (hour outer, day inner) to its slot.
// Indexes outside 0..CellCount-1 are wrapped.
func SlotAt(index int) SlotKey {
	index = WrapIndex(index)
	return SlotKey{
		Day:  Day(index % DaysPerWeek),
		Hour: FirstHour + index/DaysPerWeek,
	}
}

// IndexOf is the inverse of SlotAt. It returns -1 for slots outside the grid.
func IndexOf(k SlotKey) int {
	if !k.Valid() {
		return -1
	}
	return (k.Hour-FirstHour)*DaysPerWeek + int(k.Day)
}

func WrapIndex(i int) int {
	i %= CellCount
	if i < 0 {
		i += CellCount
	}
	return i
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusOverdue:
		return true
	default:
		return false
	}
}

// Next advances along pending -> completed -> overdue -> pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusCompleted
	case StatusCompleted:
		return StatusOverdue
	default:
		return StatusPending
	}
}

type Task struct {
	Title  string `json:"title"`
	Status Status `json:"status"`
}

func NewTask(title string) Task {
	return Task{Title: title, Status: StatusPending}
}

// Board is the sparse task mapping; absent keys are empty slots.
type Board map[SlotKey]Task

func (b Board) Clone() Board {
	out := make(Board, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Keys returns occupied slots in grid order.
func (b Board) Keys() []SlotKey {
	keys := make([]SlotKey, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return IndexOf(keys[i]) < IndexOf(keys[j]) })
	return keys
}
