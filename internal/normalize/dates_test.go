package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMonthYear(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"june", "2023-06-15", "June 2023"},
		{"january", "2005-01-01", "January 2005"},
		{"december", "1999-12-31", "December 1999"},
		{"year and month only", "2023-06", "June 2023"},
		{"empty", "", ""},
		{"garbage", "soon", ""},
		{"month out of range", "2023-13-01", ""},
		{"zero month", "2023-00-01", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMonthYear(tt.in))
		})
	}
}
