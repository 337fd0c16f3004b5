package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	sync key.Binding
	copy key.Binding
	info key.Binding
	esc  key.Binding
	quit key.Binding
}

var keys = keyMap{
	sync: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync now")),
	copy: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy secret key")),
	info: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "build info")),
	esc:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func helpLine(bindings ...key.Binding) string {
	line := ""
	for i, b := range bindings {
		if i > 0 {
			line += "    "
		}
		line += b.Help().Key + ": " + b.Help().Desc
	}
	return line
}
