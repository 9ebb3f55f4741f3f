package calendar

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthGrid renders the month as an HTML table with a booking count per day.
func MonthGrid(data MonthData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := fmt.Sprintf("%s %d", data.Month, data.Year)
		if _, err := io.WriteString(w, `<div id="month-calendar" class="month-calendar"><h2 class="text-lg font-semibold">`+
			templ.EscapeString(title)+`</h2><table class="w-full table-fixed"><thead><tr>`); err != nil {
			return err
		}
		for _, h := range weekdayHeaders {
			if _, err := io.WriteString(w, `<th class="text-xs text-gray-500">`+h+`</th>`); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tr></thead><tbody>`); err != nil {
			return err
		}
		for _, week := range data.Weeks {
			if _, err := io.WriteString(w, `<tr>`); err != nil {
				return err
			}
			for _, cell := range week {
				if err := renderCell(w, cell); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table><p class="text-sm text-gray-600">Total bookings: `+
			strconv.Itoa(data.Total)+`</p></div>`)
		return err
	})
}

func renderCell(w io.Writer, cell DayCell) error {
	if !cell.InMonth {
		_, err := io.WriteString(w, `<td class="calendar-day outside"></td>`)
		return err
	}
	class := "calendar-day"
	if cell.Count > 0 {
		class += " has-bookings"
	}
	_, err := io.WriteString(w, `<td class="`+class+`" data-date="`+templ.EscapeString(cell.Date)+`">`+
		`<span class="day">`+strconv.Itoa(cell.Day)+`</span>`+
		`<span class="count">`+strconv.Itoa(cell.Count)+`</span></td>`)
	return err
}
