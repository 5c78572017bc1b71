package viewer

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	FirstPage = 100
	LastPage  = 899
)

// CommandKind is what the user asked for at the prompt.
type CommandKind int

const (
	CmdGoto CommandKind = iota
	CmdNext
	CmdPrev
	CmdReload
	CmdLinks
	CmdChannel
	CmdQuit
)

// Command is one parsed prompt line.
type Command struct {
	Kind CommandKind
	Arg  string // page number for CmdGoto, channel name for CmdChannel
}

// ParseCommand parses a prompt line. An empty line reloads the current page.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return Command{Kind: CmdReload}, nil
	case "+", "n":
		return Command{Kind: CmdNext}, nil
	case "-", "p":
		return Command{Kind: CmdPrev}, nil
	case "l", "links":
		return Command{Kind: CmdLinks}, nil
	case "q", "quit", "exit":
		return Command{Kind: CmdQuit}, nil
	}

	if name, ok := strings.CutPrefix(line, "ch "); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return Command{}, fmt.Errorf("missing channel name")
		}
		return Command{Kind: CmdChannel, Arg: name}, nil
	}

	if err := ValidatePage(line); err != nil {
		return Command{}, err
	}
	return Command{Kind: CmdGoto, Arg: line}, nil
}

// ValidatePage checks that s is a page number between 100 and 899.
func ValidatePage(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || len(s) != 3 || n < FirstPage || n > LastPage {
		return fmt.Errorf("invalid page %q: want a number from %d to %d", s, FirstPage, LastPage)
	}
	return nil
}

// stepPage moves a valid page number by delta, staying within range.
func stepPage(page string, delta int) string {
	n, err := strconv.Atoi(page)
	if err != nil {
		return page
	}
	n = min(max(n+delta, FirstPage), LastPage)
	return strconv.Itoa(n)
}
