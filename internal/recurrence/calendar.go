package recurrence

import "time"

// YearMonth is a calendar month. Month is zero-based (0 = January).
type YearMonth struct {
	Year  int
	Month int
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month()) - 1}
}

// Key orders months: year*12 + month.
func (ym YearMonth) Key() int {
	return MonthKey(ym.Year, ym.Month)
}

// Add returns the month n months later (or earlier when n is negative).
func (ym YearMonth) Add(n int) YearMonth {
	y, m := AddMonths(ym.Year, ym.Month, n)
	return YearMonth{Year: y, Month: m}
}

// AddMonths moves (year, month) by n months, wrapping month into 0..11.
func AddMonths(year, month, n int) (int, int) {
	total := year*12 + month + n
	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	return y, m
}

// DaysInMonth returns the length of the zero-based month.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampDay limits day to the length of the month.
func ClampDay(year, month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysInMonth(year, month); day > last {
		return last
	}
	return day
}

// MonthKey orders (year, month) pairs.
func MonthKey(year, month int) int {
	return year*12 + month
}

// Horizon is the rolling window of months kept pre-materialized.
type Horizon struct {
	From   YearMonth
	Length int
}

// NewHorizon returns a window of length months starting with the month of now.
func NewHorizon(now time.Time, length int) Horizon {
	return Horizon{From: YearMonthOf(now), Length: length}
}

// Months lists the months of the window in order.
func (h Horizon) Months() []YearMonth {
	months := make([]YearMonth, 0, h.Length)
	for i := 0; i < h.Length; i++ {
		months = append(months, h.From.Add(i))
	}
	return months
}

// Contains reports whether ym falls inside the window.
func (h Horizon) Contains(ym YearMonth) bool {
	k := ym.Key()
	return k >= h.From.Key() && k < h.From.Key()+h.Length
}
