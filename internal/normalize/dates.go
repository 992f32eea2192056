package normalize

import (
	"strconv"
	"strings"
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// FormatMonthYear renders an ISO date string ("2023-06-15") as "June 2023".
// Empty or unparseable input yields "".
func FormatMonthYear(isoDate string) string {
	parts := strings.SplitN(isoDate, "-", 3)
	if len(parts) < 2 {
		return ""
	}

	year := parts[0]
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 || len(year) != 4 {
		return ""
	}

	return monthNames[month-1] + " " + year
}
