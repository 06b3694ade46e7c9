// Package http contains the HTTP handlers for the calendar query API.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"chinacal/internal/calendar"
	apierrors "chinacal/internal/errors"
)

// CalendarHandler serves the calendar classification and trading-day
// endpoints. Handlers are stateless: every request resolves its own
// parameters, queries the oracle and renders the result.
type CalendarHandler struct {
	oracle       *calendar.Oracle
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCalendarHandler creates a new calendar handler.
func NewCalendarHandler(oracle *calendar.Oracle, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *CalendarHandler {
	return &CalendarHandler{
		oracle:       oracle,
		logger:       logger.With(slog.String("component", "calendar_handler")),
		errorHandler: errorHandler,
	}
}

// RegisterRoutes registers every calendar endpoint on the router. Paths are
// fixed strings; the table mirrors the public API one to one.
func (h *CalendarHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/workdays", h.flagEndpoint("is_workday", h.oracle.IsWorkday))
	r.Get("/api/holidays", h.flagEndpoint("is_holiday", h.oracle.IsHoliday))
	r.Get("/api/in-lieu", h.flagEndpoint("is_in_lieu", h.oracle.IsInLieu))
	r.Get("/api/holiday/detail", h.HolidayDetail)
	r.Get("/api/date/type", h.DateType)
	r.Get("/api/holidays/range", h.rangeListEndpoint("holidays", h.oracle.Holidays, true))
	r.Get("/api/workdays/range", h.rangeListEndpoint("workdays", h.oracle.Workdays, true))
	r.Get("/api/interbank/trading-days", h.flagEndpoint("is_interbank_trading_day", h.oracle.IsInterbankTradingDay))
	r.Get("/api/a-share/trading-days", h.flagEndpoint("is_a_share_trading_day", h.oracle.IsAShareTradingDay))
	r.Get("/api/interbank/trading-days/list", h.rangeListEndpoint("interbank_trading_days", h.ignoreWeekendToggle(h.oracle.InterbankTradingDays), false))
	r.Get("/api/a-share/trading-days/list", h.rangeListEndpoint("a_share_trading_days", h.ignoreWeekendToggle(h.oracle.AShareTradingDays), false))
}

// flagEndpoint builds a handler that resolves the request's dates and maps
// each through a single boolean predicate, one record per date in resolved
// order.
func (h *CalendarHandler) flagEndpoint(key string, pred func(calendar.Date) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dates, err := resolveDates(r.URL.Query())
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}

		results := make([]map[string]interface{}, 0, len(dates))
		for _, d := range dates {
			ok, err := pred(d)
			if err != nil {
				h.errorHandler.HandleError(w, r, err)
				return
			}
			results = append(results, map[string]interface{}{"date": d.String(), key: ok})
		}
		render.JSON(w, r, map[string]interface{}{"results": results})
	}
}

// holidayDetailResult is one record of the /api/holiday/detail response.
// holiday_name serializes as null when the date has no festival attached.
type holidayDetailResult struct {
	Date        string  `json:"date"`
	IsHoliday   bool    `json:"is_holiday"`
	HolidayName *string `json:"holiday_name"`
}

// HolidayDetail handles GET /api/holiday/detail.
func (h *CalendarHandler) HolidayDetail(w http.ResponseWriter, r *http.Request) {
	dates, err := resolveDates(r.URL.Query())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	results := make([]holidayDetailResult, 0, len(dates))
	for _, d := range dates {
		isHoliday, name, err := h.oracle.HolidayDetail(d)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		results = append(results, holidayDetailResult{
			Date:        d.String(),
			IsHoliday:   isHoliday,
			HolidayName: name,
		})
	}
	render.JSON(w, r, map[string]interface{}{"results": results})
}

// dateTypeResult is the /api/date/type response.
type dateTypeResult struct {
	Date   string `json:"date"`
	Type   string `json:"type"`
	Result bool   `json:"result"`
}

// DateType handles GET /api/date/type: exactly one date checked against
// one named predicate.
func (h *CalendarHandler) DateType(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateValue := query.Get("date")
	if dateValue == "" {
		h.errorHandler.HandleError(w, r, apierrors.MissingParameter("date"))
		return
	}
	selector, err := resolveTypeSelector(query.Get("type"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	d, err := parseDate(dateValue)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	result, err := h.check(selector, d)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, dateTypeResult{Date: d.String(), Type: string(selector), Result: result})
}

// check dispatches a type selector to its predicate. The switch is
// exhaustive over the selector constants.
func (h *CalendarHandler) check(selector TypeSelector, d calendar.Date) (bool, error) {
	switch selector {
	case TypeHoliday:
		return h.oracle.IsHoliday(d)
	case TypeWorkday:
		return h.oracle.IsWorkday(d)
	case TypeInLieu:
		return h.oracle.IsInLieu(d)
	case TypeInterbankTradingDay:
		return h.oracle.IsInterbankTradingDay(d)
	case TypeAShareTradingDay:
		return h.oracle.IsAShareTradingDay(d)
	}
	return false, fmt.Errorf("unhandled type selector %q", selector)
}

// rangeListEndpoint builds a handler for the range-list endpoints. Only the
// holiday/workday listings expose the include_weekends toggle; the
// trading-day predicates already encode weekend handling.
func (h *CalendarHandler) rangeListEndpoint(key string, list func(start, end calendar.Date, includeWeekends bool) ([]calendar.Date, error), weekendToggle bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		start, end, err := requireRange(query)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		includeWeekends := true
		if weekendToggle {
			includeWeekends, err = parseBool(query.Get("include_weekends"), true)
			if err != nil {
				h.errorHandler.HandleError(w, r, err)
				return
			}
		}

		days, err := list(start, end, includeWeekends)
		if err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		render.JSON(w, r, map[string]interface{}{key: formatDates(days)})
	}
}

// ignoreWeekendToggle adapts a fixed-semantics listing to the range-list
// handler signature.
func (h *CalendarHandler) ignoreWeekendToggle(list func(start, end calendar.Date) ([]calendar.Date, error)) func(start, end calendar.Date, includeWeekends bool) ([]calendar.Date, error) {
	return func(start, end calendar.Date, _ bool) ([]calendar.Date, error) {
		return list(start, end)
	}
}

func formatDates(dates []calendar.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
