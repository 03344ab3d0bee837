package calendar

// UnavailableDates lists the days in r that cannot be sold, in order.
func UnavailableDates(cal *Calendar, r DateRange) []Date {
	var out []Date
	for _, d := range r.Dates() {
		if !isSellable(cal.Day(d).Status) {
			out = append(out, d)
		}
	}
	return out
}

func IsRangeFree(cal *Calendar, r DateRange) bool {
	for _, d := range r.Dates() {
		if !isSellable(cal.Day(d).Status) {
			return false
		}
	}
	return true
}

func isSellable(s DayStatus) bool {
	switch s {
	case StatusAvailable:
		return true
	case StatusBlocked, StatusBooked:
		return false
	default:
		return false
	}
}

// RequiredMinStay returns the minimum stay set on the arrival day, or 1.
func RequiredMinStay(cal *Calendar, r DateRange) int {
	if ms := cal.Day(r.Start()).MinStay; ms != nil && *ms > 1 {
		return *ms
	}
	return 1
}
