package types

import "time"

// DisplayDateLayout renders dates as "Tue Jan 15 2019"
const DisplayDateLayout = "Mon Jan 02 2006"

// DisplayDate formats t in its own location using DisplayDateLayout
func DisplayDate(t time.Time) string {
	return t.Format(DisplayDateLayout)
}
