package calendar

// Trading-day status for the two mainland market venues. The interbank
// bond and money market follows the official workday calendar exactly,
// so it opens on weekend days redesignated as working days. Equity
// exchanges never open on weekends, redesignated or not.

// IsInterbankTradingDay reports whether the interbank market is open on d.
func (o *Oracle) IsInterbankTradingDay(d Date) (bool, error) {
	return o.IsWorkday(d)
}

// IsAShareTradingDay reports whether mainland equity exchanges are open
// on d: a workday that also falls on a Monday-Friday weekday.
func (o *Oracle) IsAShareTradingDay(d Date) (bool, error) {
	workday, err := o.IsWorkday(d)
	if err != nil {
		return false, err
	}
	return workday && !d.IsWeekend(), nil
}
