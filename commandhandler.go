package main

import (
	"strconv"
	"strings"
)

// CommandHandler processes ":" commands.
type CommandHandler struct{}

// NewCommandHandler initializes a new CommandHandler.
func NewCommandHandler() *CommandHandler {
	return &CommandHandler{}
}

// HandleCommand processes a command string such as ":e main.cpp".
func (ch *CommandHandler) HandleCommand(v *Viewer, command string) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(command), ":"), " ")
	arg = strings.Trim(strings.TrimSpace(arg), "\"")

	switch name {
	case "":
	case "q", "quit":
		v.quit = true
	case "e", "edit":
		if arg == "" {
			v.reloadActive()
		} else {
			v.openFile(arg)
		}
	case "close":
		v.closeActive()
	case "comments":
		v.toggleComments()
	case "find":
		if arg == "" {
			v.beginSearch()
		} else {
			v.runSearch(arg)
		}
	case "case":
		v.toggleCaseSensitive()
	case "goto":
		v.gotoLine(arg)
	case "export":
		if arg == "" {
			v.beginExport()
		} else {
			v.exportActive(arg)
		}
	case "ln":
		v.toggleShowLineNumbers()
	case "theme":
		v.setTheme(arg)
	case "tabn":
		v.workspace.Next()
		v.dirty = true
	case "tabp":
		v.workspace.Prev()
		v.dirty = true
	default:
		if _, err := strconv.Atoi(name); err == nil {
			v.gotoLine(name)
			return
		}
		v.showStatus("Unknown command: " + command)
	}
}
