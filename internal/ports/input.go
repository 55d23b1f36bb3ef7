package ports

import "fmt"

type CommandKind int

const (
	CommandTogglePause CommandKind = iota
	CommandSeekRelative
	CommandSeekAbsolute
	CommandSetVolume
	CommandQuit
)

func (k CommandKind) String() string {
	switch k {
	case CommandTogglePause:
		return "toggle_pause"
	case CommandSeekRelative:
		return "seek_relative"
	case CommandSeekAbsolute:
		return "seek_absolute"
	case CommandSetVolume:
		return "set_volume"
	case CommandQuit:
		return "quit"
	}
	return fmt.Sprintf("command(%d)", int(k))
}

// Command is a discrete user request. Value carries seconds for seeks and the
// gain for set_volume.
type Command struct {
	Kind  CommandKind
	Value float64
}

func (c Command) String() string {
	switch c.Kind {
	case CommandSeekRelative, CommandSeekAbsolute, CommandSetVolume:
		return fmt.Sprintf("%s(%g)", c.Kind, c.Value)
	}
	return c.Kind.String()
}

func TogglePause() Command               { return Command{Kind: CommandTogglePause} }
func SeekRelative(delta float64) Command { return Command{Kind: CommandSeekRelative, Value: delta} }
func SeekAbsolute(at float64) Command    { return Command{Kind: CommandSeekAbsolute, Value: at} }
func SetVolume(gain float64) Command     { return Command{Kind: CommandSetVolume, Value: gain} }
func Quit() Command                      { return Command{Kind: CommandQuit} }

// Input delivers commands. Poll never blocks.
type Input interface {
	Poll() []Command
}

// Waker is implemented by inputs that can interrupt a sleeping control loop
// when a command arrives.
type Waker interface {
	Wake() <-chan struct{}
}
