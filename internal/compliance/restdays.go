package compliance

// NextEligiblePitchDate computes when a pitcher may next legally pitch, given
// the rest-day tier for their age and official pitch count. Eligibility
// resumes the day after the last mandated rest day, hence restDays+1: a
// three-rest-day outing on May 10 blocks May 11-13 and allows May 14.
//
// The boolean is false when no age rule or no tier matches (age outside the
// policy table, or a zero count); callers store no eligibility date in that
// case.
func NextEligiblePitchDate(rules []AgeRule, age, officialCount int, gameDate Date) (Date, bool) {
	rule, ok := FindAgeRule(rules, age)
	if !ok {
		return Date{}, false
	}
	restDays, ok := rule.RequiredRestDays(officialCount)
	if !ok {
		return Date{}, false
	}
	return gameDate.AddDays(restDays + 1), true
}
