package dashboard

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

// StatsCards renders the dashboard summary row.
func StatsCards(data StatsData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<section id="dashboard-stats" class="grid grid-cols-3 gap-4" data-period="`)
		b.WriteString(templ.EscapeString(data.Period))
		b.WriteString(`"><h2 class="col-span-3 text-lg font-semibold">`)
		b.WriteString(templ.EscapeString(data.PeriodLabel))
		b.WriteString(`</h2>`)
		for _, card := range data.Cards {
			b.WriteString(`<div class="rounded border p-4"><p class="text-sm text-gray-500">`)
			b.WriteString(templ.EscapeString(card.Label))
			b.WriteString(`</p><p class="text-2xl font-bold">`)
			b.WriteString(templ.EscapeString(card.Value))
			b.WriteString(`</p></div>`)
		}
		b.WriteString(`</section>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// formatInt groups digits in threes: 1234567 -> 1,234,567.
func formatInt(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
