package daterange

import (
	"time"

	"github.com/pkg/errors"
)

type Preset string

const (
	Today       Preset = "TODAY"
	ThisWeek    Preset = "THIS_WEEK"
	ThisMonth   Preset = "THIS_MONTH"
	ThisYear    Preset = "THIS_YEAR"
	LastMonth   Preset = "LAST_MONTH"
	Last3Months Preset = "LAST_3_MONTHS"
	AllTime     Preset = "ALL_TIME"
	Custom      Preset = "CUSTOM"
)

// Range - границы периода включительно, время обнулено
type Range struct {
	Start time.Time
	End   time.Time
}

func trunc(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FromPreset вычисляет границы периода относительно today.
// Неделя начинается с понедельника.
func FromPreset(preset Preset, today time.Time) (Range, error) {
	today = trunc(today)
	switch preset {
	case Today:
		return Range{Start: today, End: today}, nil
	case ThisWeek:
		offset := (int(today.Weekday()) + 6) % 7 // Monday = 0
		return Range{Start: today.AddDate(0, 0, -offset), End: today}, nil
	case ThisMonth:
		return Range{Start: firstOfMonth(today), End: today}, nil
	case ThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return Range{Start: start, End: today}, nil
	case LastMonth:
		firstThis := firstOfMonth(today)
		return Range{
			Start: firstThis.AddDate(0, -1, 0),
			End:   firstThis.AddDate(0, 0, -1),
		}, nil
	case Last3Months:
		return Range{Start: firstOfMonth(today).AddDate(0, -2, 0), End: today}, nil
	case AllTime, "":
		start := time.Date(2000, time.January, 1, 0, 0, 0, 0, today.Location())
		return Range{Start: start, End: today}, nil
	}
	return Range{}, errors.Errorf("неизвестный период (%v)", preset)
}

// FromCustom произвольные границы, время обнуляется
func FromCustom(start, end time.Time) (Range, error) {
	start = trunc(start)
	end = trunc(end)
	if end.Before(start) {
		return Range{}, errors.New("дата окончания раньше даты начала")
	}
	return Range{Start: start, End: end}, nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Resolve период из фильтра запроса, явные границы имеют приоритет над пресетом
func Resolve(preset string, start, end *time.Time, today time.Time) (Range, error) {
	if Preset(preset) == Custom || (start != nil && end != nil) {
		if start == nil || end == nil {
			return Range{}, errors.New("не указаны границы периода")
		}
		return FromCustom(*start, *end)
	}
	return FromPreset(Preset(preset), today)
}
