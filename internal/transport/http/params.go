package http

import (
	"net/url"
	"strings"

	"chinacal/internal/calendar"
	apierrors "chinacal/internal/errors"
)

// parseDate parses a strict YYYY-MM-DD query literal.
func parseDate(literal string) (calendar.Date, error) {
	d, err := calendar.ParseDate(literal)
	if err != nil {
		return calendar.Date{}, apierrors.InvalidDateFormat(literal)
	}
	return d, nil
}

// resolveDates normalizes the request's date input into an ordered
// sequence. An explicit 'dates' list takes precedence over a 'start'/'end'
// range; input order and duplicates are preserved for lists.
func resolveDates(query url.Values) ([]calendar.Date, error) {
	if list := query["dates"]; len(list) > 0 {
		dates := make([]calendar.Date, 0, len(list))
		for _, literal := range list {
			d, err := parseDate(literal)
			if err != nil {
				return nil, err
			}
			dates = append(dates, d)
		}
		return dates, nil
	}

	start, end := query.Get("start"), query.Get("end")
	if start == "" || end == "" {
		return nil, apierrors.MissingDateParameters()
	}
	return expandRange(start, end)
}

// requireRange resolves the mandatory 'start' and 'end' parameters of the
// range-list endpoints.
func requireRange(query url.Values) (calendar.Date, calendar.Date, error) {
	start, end := query.Get("start"), query.Get("end")
	if start == "" || end == "" {
		return calendar.Date{}, calendar.Date{}, apierrors.MissingRangeParameters()
	}
	startDate, err := parseDate(start)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return calendar.Date{}, calendar.Date{}, err
	}
	if endDate.Before(startDate) {
		return calendar.Date{}, calendar.Date{}, apierrors.InvalidRange()
	}
	return startDate, endDate, nil
}

func expandRange(start, end string) ([]calendar.Date, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	if endDate.Before(startDate) {
		return nil, apierrors.InvalidRange()
	}
	return calendar.Expand(startDate, endDate)
}

// parseBool parses a tri-state textual boolean: absent input yields the
// default, recognized literals their value, anything else an error.
func parseBool(value string, defaultValue bool) (bool, error) {
	if value == "" {
		return defaultValue, nil
	}
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, apierrors.InvalidBoolean()
}

// TypeSelector names one of the per-date predicates exposed by the
// /api/date/type endpoint. Values are case-sensitive exact matches.
type TypeSelector string

const (
	TypeHoliday             TypeSelector = "holiday"
	TypeWorkday             TypeSelector = "workday"
	TypeInLieu              TypeSelector = "in-lieu"
	TypeInterbankTradingDay TypeSelector = "interbank-trading-day"
	TypeAShareTradingDay    TypeSelector = "a-share-trading-day"
)

// typeSelectorNames lists every recognized selector for error messages.
var typeSelectorNames = []string{
	string(TypeHoliday),
	string(TypeWorkday),
	string(TypeInLieu),
	string(TypeInterbankTradingDay),
	string(TypeAShareTradingDay),
}

// resolveTypeSelector validates the 'type' parameter.
func resolveTypeSelector(value string) (TypeSelector, error) {
	if value == "" {
		return "", apierrors.MissingParameter("type")
	}
	switch sel := TypeSelector(value); sel {
	case TypeHoliday, TypeWorkday, TypeInLieu, TypeInterbankTradingDay, TypeAShareTradingDay:
		return sel, nil
	}
	return "", apierrors.UnknownTypeSelector(value, typeSelectorNames)
}
