package tui

import (
	"strings"
	"time"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
	}

	return appStyle.Render(b.String())
}

func field(label, value string) string {
	return labelStyle.Render(label) + value + "\n"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatLastSync(t *time.Time, now time.Time) string {
	if t == nil {
		return "never"
	}
	ago := now.Sub(*t).Truncate(time.Second)
	if ago < 0 {
		ago = 0
	}
	return t.Local().Format("2006-01-02 15:04:05") + " (" + ago.String() + " ago)"
}
