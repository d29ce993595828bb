package engine

import (
	"strconv"
	"strings"
)

// FuncWeekdayWeekendDifference compares habitual weekday and weekend sleep
// durations. It reads four fixed questions holding HH:MM clock times.
const FuncWeekdayWeekendDifference = "weekdayWeekendDifference"

const (
	weekdayBedtimeQuestionID  = "7"
	weekdayWaketimeQuestionID = "8"
	weekendBedtimeQuestionID  = "9"
	weekendWaketimeQuestionID = "10"
)

const minutesPerDay = 24 * 60

// ParseTimeToMinutes converts an HH:MM clock string to minutes since
// midnight. The boolean is false when the string is not a valid clock time.
func ParseTimeToMinutes(timeStr string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(timeStr), ":")
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// WeekdayWeekendDifference returns the absolute difference between weekend
// and weekday sleep duration in hours. Durations wrap across midnight when
// the waketime is numerically earlier than the bedtime. The boolean is
// false when any of the four time answers fails to parse, in which case
// the predicate is undefined and the gateway must not trigger.
func WeekdayWeekendDifference(responses Snapshot) (float64, bool) {
	weekdayBedtime, ok := ParseTimeToMinutes(responses[weekdayBedtimeQuestionID])
	if !ok {
		return 0, false
	}
	weekdayWaketime, ok := ParseTimeToMinutes(responses[weekdayWaketimeQuestionID])
	if !ok {
		return 0, false
	}
	weekendBedtime, ok := ParseTimeToMinutes(responses[weekendBedtimeQuestionID])
	if !ok {
		return 0, false
	}
	weekendWaketime, ok := ParseTimeToMinutes(responses[weekendWaketimeQuestionID])
	if !ok {
		return 0, false
	}

	weekdayDuration := weekdayWaketime - weekdayBedtime
	if weekdayDuration < 0 {
		weekdayDuration += minutesPerDay
	}
	weekendDuration := weekendWaketime - weekendBedtime
	if weekendDuration < 0 {
		weekendDuration += minutesPerDay
	}

	diff := weekendDuration - weekdayDuration
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) / 60, true
}
