package session

import (
	"fmt"
	"io"
)

// Choice is a parsed top-level menu selection.
type Choice int

const (
	ChoiceInvalid Choice = iota
	ChoiceExit
	ChoiceAdd
	ChoiceList
	ChoiceSelect
	ChoiceUpdate
	ChoiceDelete
)

type menuItem struct {
	number int
	choice Choice
	label  string
}

// menu is listed in display order; number is what the user types.
var menu = []menuItem{
	{1, ChoiceAdd, "Add a project"},
	{2, ChoiceList, "List projects"},
	{3, ChoiceSelect, "Select a project"},
	{4, ChoiceUpdate, "Update project details"},
	{5, ChoiceDelete, "Delete a project"},
}

// ParseChoice maps coerced menu input to a Choice. Absent input means exit.
func ParseChoice(n *int) Choice {
	if n == nil {
		return ChoiceExit
	}
	for _, item := range menu {
		if item.number == *n {
			return item.choice
		}
	}
	return ChoiceInvalid
}

func printMenu(w io.Writer) {
	fmt.Fprintln(w, "\nThese are the available selections. Press the Enter key to quit:")
	for _, item := range menu {
		fmt.Fprintf(w, "  %d) %s\n", item.number, item.label)
	}
}
