package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/sadopc/qconsole/internal/templates"
)

var categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))

func templatesCmd() {
	args := os.Args[2:]
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		color := term.IsTerminal(int(os.Stdout.Fd()))
		for _, cat := range templates.Categories() {
			heading := cat
			if color {
				heading = categoryStyle.Render(cat)
			}
			fmt.Println(heading)
			for _, t := range templates.ByCategory(cat) {
				fmt.Printf("  %-20s %s\n", t.Name, t.Description)
			}
		}
	case "show":
		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "Usage: qconsole templates show <name>\n")
			os.Exit(2)
		}
		t := templates.ByName(args[0])
		if t == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown template %q\n", args[0])
			os.Exit(1)
		}
		fmt.Println(t.Snippet)
	default:
		fmt.Fprintf(os.Stderr, "Usage: qconsole templates [list|show <name>]\n")
		os.Exit(2)
	}
}
