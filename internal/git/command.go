package git

import (
	"fmt"
	"strings"
)

// Command identifies the git subcommand whose output is being interpreted.
type Command uint8

const (
	CommandAdd Command = iota
	CommandBranch
	CommandCheckout
	CommandCommit
	CommandLog
	CommandMove
	CommandRemove
	CommandReset
	CommandStatus
)

var commandNames = [...]string{
	CommandAdd:      "add",
	CommandBranch:   "branch",
	CommandCheckout: "checkout",
	CommandCommit:   "commit",
	CommandLog:      "log",
	CommandMove:     "mv",
	CommandRemove:   "rm",
	CommandReset:    "reset",
	CommandStatus:   "status",
}

// Stable codes carried by CommandError; callers may match on them.
var commandCodes = [...]int{
	CommandAdd:      401000,
	CommandBranch:   402000,
	CommandCheckout: 403000,
	CommandCommit:   404000,
	CommandLog:      405000,
	CommandMove:     406000,
	CommandRemove:   407000,
	CommandReset:    408000,
	CommandStatus:   409000,
}

func (c Command) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// Code returns the stable numeric error code of the command.
func (c Command) Code() int {
	if int(c) < len(commandCodes) {
		return commandCodes[c]
	}
	return 0
}

// Commands lists every supported command in code order.
func Commands() []Command {
	cmds := make([]Command, len(commandNames))
	for i := range commandNames {
		cmds[i] = Command(i)
	}
	return cmds
}

// ParseCommand accepts the git subcommand name ("mv", "rm", ...) or its long
// spelling ("move", "remove").
func ParseCommand(name string) (Command, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "move":
		return CommandMove, nil
	case "remove":
		return CommandRemove, nil
	}
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, invalidArgf("unknown command %q", name)
}

// Response is the typed result of one command invocation.
type Response interface {
	Command() Command
}
