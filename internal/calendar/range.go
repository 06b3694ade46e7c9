package calendar

import "errors"

// ErrInvalidRange marks a range whose end date precedes its start date.
var ErrInvalidRange = errors.New("end date must not be earlier than start date")

// Expand lists every date from start to end inclusive, ascending.
func Expand(start, end Date) ([]Date, error) {
	if end.Before(start) {
		return nil, ErrInvalidRange
	}
	dates := make([]Date, 0, start.DaysUntil(end)+1)
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// FilterRange expands [start, end] and keeps the dates the predicate
// accepts. With includeWeekends false, Saturdays and Sundays are dropped
// regardless of the predicate result.
func FilterRange(start, end Date, pred func(Date) (bool, error), includeWeekends bool) ([]Date, error) {
	expanded, err := Expand(start, end)
	if err != nil {
		return nil, err
	}
	kept := make([]Date, 0, len(expanded))
	for _, d := range expanded {
		if !includeWeekends && d.IsWeekend() {
			continue
		}
		ok, err := pred(d)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, d)
		}
	}
	return kept, nil
}

// Holidays lists the rest days within [start, end].
func (o *Oracle) Holidays(start, end Date, includeWeekends bool) ([]Date, error) {
	return FilterRange(start, end, o.IsHoliday, includeWeekends)
}

// Workdays lists the working days within [start, end].
func (o *Oracle) Workdays(start, end Date, includeWeekends bool) ([]Date, error) {
	return FilterRange(start, end, o.IsWorkday, includeWeekends)
}

// InterbankTradingDays lists the interbank market trading days within
// [start, end]. Weekend handling is already part of the predicate.
func (o *Oracle) InterbankTradingDays(start, end Date) ([]Date, error) {
	return FilterRange(start, end, o.IsInterbankTradingDay, true)
}

// AShareTradingDays lists the equity market trading days within
// [start, end].
func (o *Oracle) AShareTradingDays(start, end Date) ([]Date, error) {
	return FilterRange(start, end, o.IsAShareTradingDay, true)
}
