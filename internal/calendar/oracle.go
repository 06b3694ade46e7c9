// Package calendar classifies mainland Chinese calendar dates as workdays,
// holidays and in-lieu rest days, and derives market trading-day status
// from those facts.
package calendar

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v2"
)

//go:embed data.yaml
var rawData []byte

// ErrOutOfRange marks a lookup for a date outside the span covered by the
// classification table.
var ErrOutOfRange = errors.New("date outside supported calendar range")

// Classification carries every fact the table records about a single date.
type Classification struct {
	Workday bool
	Holiday bool
	InLieu  bool
	// HolidayName is the festival the date belongs to. It is set for rest
	// days inside an announced holiday span and for the weekend days
	// redesignated as working days in exchange; nil otherwise.
	HolidayName *string
}

// Oracle answers classification queries from a static table of official
// holiday arrangements. It is immutable after construction and safe for
// concurrent use.
type Oracle struct {
	minDate  Date
	maxDate  Date
	holidays map[Date]string
	workdays map[Date]string
	inLieu   map[Date]struct{}
}

type tableFile struct {
	MinDate  string            `yaml:"min_date"`
	MaxDate  string            `yaml:"max_date"`
	Holidays map[string]string `yaml:"holidays"`
	Workdays map[string]string `yaml:"workdays"`
	InLieu   []string          `yaml:"in_lieu"`
}

// NewOracle builds an Oracle from the embedded classification table.
func NewOracle() (*Oracle, error) {
	return newOracleFromYAML(rawData)
}

func newOracleFromYAML(data []byte) (*Oracle, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse calendar table: %w", err)
	}

	minDate, err := ParseDate(file.MinDate)
	if err != nil {
		return nil, fmt.Errorf("calendar table min_date: %w", err)
	}
	maxDate, err := ParseDate(file.MaxDate)
	if err != nil {
		return nil, fmt.Errorf("calendar table max_date: %w", err)
	}
	if maxDate.Before(minDate) {
		return nil, fmt.Errorf("calendar table range inverted: %s..%s", minDate, maxDate)
	}

	o := &Oracle{
		minDate:  minDate,
		maxDate:  maxDate,
		holidays: make(map[Date]string, len(file.Holidays)),
		workdays: make(map[Date]string, len(file.Workdays)),
		inLieu:   make(map[Date]struct{}, len(file.InLieu)),
	}
	for literal, name := range file.Holidays {
		d, err := o.parseTableDate(literal)
		if err != nil {
			return nil, err
		}
		o.holidays[d] = name
	}
	for literal, name := range file.Workdays {
		d, err := o.parseTableDate(literal)
		if err != nil {
			return nil, err
		}
		if _, clash := o.holidays[d]; clash {
			return nil, fmt.Errorf("calendar table lists %s as both holiday and workday", d)
		}
		o.workdays[d] = name
	}
	for _, literal := range file.InLieu {
		d, err := o.parseTableDate(literal)
		if err != nil {
			return nil, err
		}
		o.inLieu[d] = struct{}{}
	}
	return o, nil
}

func (o *Oracle) parseTableDate(literal string) (Date, error) {
	d, err := ParseDate(literal)
	if err != nil {
		return Date{}, fmt.Errorf("calendar table entry: %w", err)
	}
	if d.Before(o.minDate) || d.After(o.maxDate) {
		return Date{}, fmt.Errorf("calendar table entry %s outside declared range %s..%s", d, o.minDate, o.maxDate)
	}
	return d, nil
}

// SupportedRange returns the inclusive span the table covers.
func (o *Oracle) SupportedRange() (Date, Date) {
	return o.minDate, o.maxDate
}

// Classify returns every recorded fact about a date. Dates outside the
// supported span fail with ErrOutOfRange.
func (o *Oracle) Classify(d Date) (Classification, error) {
	if d.Before(o.minDate) || d.After(o.maxDate) {
		return Classification{}, fmt.Errorf("%s: %w (supported: %s..%s)", d, ErrOutOfRange, o.minDate, o.maxDate)
	}

	c := Classification{}
	if name, ok := o.holidays[d]; ok {
		c.Holiday = true
		c.HolidayName = &name
	} else if name, ok := o.workdays[d]; ok {
		c.Workday = true
		c.HolidayName = &name
	} else if d.IsWeekend() {
		c.Holiday = true
	} else {
		c.Workday = true
	}
	_, c.InLieu = o.inLieu[d]
	return c, nil
}

// IsWorkday reports whether the official calendar designates d a working
// day, counting weekend days redesignated as working days.
func (o *Oracle) IsWorkday(d Date) (bool, error) {
	c, err := o.Classify(d)
	return c.Workday, err
}

// IsHoliday reports whether d is a rest day, counting ordinary weekends.
func (o *Oracle) IsHoliday(d Date) (bool, error) {
	c, err := o.Classify(d)
	return c.Holiday, err
}

// IsInLieu reports whether d is a substitute rest day per the official
// holiday adjustments.
func (o *Oracle) IsInLieu(d Date) (bool, error) {
	c, err := o.Classify(d)
	return c.InLieu, err
}

// HolidayDetail reports whether d is a holiday together with the festival
// name, if any. The name is also returned for make-up workdays, naming the
// festival they were swapped against.
func (o *Oracle) HolidayDetail(d Date) (bool, *string, error) {
	c, err := o.Classify(d)
	return c.Holiday, c.HolidayName, err
}
