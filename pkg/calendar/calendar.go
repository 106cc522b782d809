package calendar

import (
	"fmt"
	"time"
)

// Category classifies a schedule entry. The set is closed; CategoryTodo is
// reserved for entries derived from the todo list and cannot be authored
// directly.
type Category string

const (
	CategorySchedule Category = "일정"
	CategoryWorkout  Category = "운동"
	CategoryMeal     Category = "식사"
	CategoryStudy    Category = "공부"
	CategoryTodo     Category = "todo"
)

// markerColors maps each category to its per-day indicator color.
var markerColors = map[Category]string{
	CategoryWorkout:  "#fb923c",
	CategoryMeal:     "#38bdf8",
	CategorySchedule: "#9333ea",
	CategoryStudy:    "#fde047",
	CategoryTodo:     "#22c55e",
}

// MarkerColor returns the stable indicator color for a category.
func MarkerColor(c Category) string {
	return markerColors[c]
}

// Authorable reports whether the category may be used when creating an entry
// by hand. CategoryTodo entries are only written by the todo projection.
func (c Category) Authorable() bool {
	switch c {
	case CategorySchedule, CategoryWorkout, CategoryMeal, CategoryStudy:
		return true
	}
	return false
}

// ScheduleEntry is one calendar item. Date is the localized day label, not a
// date type: exact string equality is the join key between todo-derived
// entries and calendar lookups.
type ScheduleEntry struct {
	ID       int64    `json:"id"`
	Date     string   `json:"date"`
	Category Category `json:"category"`
	Content  string   `json:"content"`
}

// DateLabel renders a day as "<year>년 <month>월 <day>일" with no zero
// padding. Every writer and reader of schedule dates must go through this
// function or the join silently fails.
func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일", t.Year(), int(t.Month()), t.Day())
}
