package commands

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies a recognized chat command.
type Kind int

const (
	KindTimeLeft  Kind = iota // query, set, add, subtract, pause, resume
	KindEmergency             // fixed emergency extension
	KindTimeSet               // persist a custom time for the current match
	KindWhitelist             // manage the emergency allowlist
)

var kindNames = map[Kind]string{
	KindTimeLeft:  "timeleft",
	KindEmergency: "tl",
	KindTimeSet:   "timeset",
	KindWhitelist: "whitelist",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a decoded chat command.
type Command struct {
	Kind   Kind
	Params string
}

// Parse decodes a command name, with or without the leading slash, and its
// raw parameter text.
func Parse(name, params string) (Command, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "/"))
	for kind, n := range kindNames {
		if n == name {
			return Command{Kind: kind, Params: strings.TrimSpace(params)}, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// ParseLine decodes a full chat line such as "/timeleft +5".
func ParseLine(line string) (Command, error) {
	name, params, _ := strings.Cut(strings.TrimSpace(line), " ")
	return Parse(name, params)
}

// Action is what a timeleft parameter asks for.
type Action int

const (
	ActionQuery Action = iota
	ActionSet
	ActionAdd
	ActionSubtract
	ActionPause
	ActionResume
)

// Adjustment is a parsed timeleft parameter. Minutes is only meaningful
// for set, add and subtract.
type Adjustment struct {
	Action  Action
	Minutes int
}

// ParseAdjustment decodes a timeleft parameter: empty for a query, "pause"
// or "resume" in any case, or an integer number of minutes with an optional
// leading sign. Zero is only accepted written as a bare "0"; minute counts
// beyond the int range saturate.
func ParseAdjustment(param string) (Adjustment, error) {
	param = strings.TrimSpace(param)
	switch {
	case param == "":
		return Adjustment{Action: ActionQuery}, nil
	case strings.EqualFold(param, "pause"):
		return Adjustment{Action: ActionPause}, nil
	case strings.EqualFold(param, "resume"):
		return Adjustment{Action: ActionResume}, nil
	}

	action := ActionSet
	digits := param
	switch param[0] {
	case '+':
		action, digits = ActionAdd, param[1:]
	case '-':
		action, digits = ActionSubtract, param[1:]
	}
	if digits == "" || strings.TrimLeft(digits, "0123456789") != "" {
		return Adjustment{}, fmt.Errorf("%w: %q", ErrInvalidParameter, param)
	}
	mins, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		mins, err = math.MaxInt, nil
	}
	if err != nil || (mins == 0 && param != "0") {
		return Adjustment{}, fmt.Errorf("%w: %q", ErrInvalidParameter, param)
	}
	return Adjustment{Action: action, Minutes: mins}, nil
}
