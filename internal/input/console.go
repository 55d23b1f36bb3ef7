package input

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"
)

var ErrUnknownCommand = errors.New("console: unknown command")

const consoleHelp = `commands:
  p          toggle pause
  f / b      seek forward / back
  s <sec>    seek to a position
  v <gain>   set volume (0 to 1)
  q          quit`

// Parse turns one console line into a command. step is the relative seek
// distance of f and b.
func Parse(line string, step float64) (ports.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ports.Command{}, ErrUnknownCommand
	}

	arg := func() (float64, error) {
		if len(fields) != 2 {
			return 0, fmt.Errorf("%w: %q takes one number", ErrUnknownCommand, fields[0])
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %q is not a number", ErrUnknownCommand, fields[1])
		}
		return v, nil
	}

	switch strings.ToLower(fields[0]) {
	case "p", "pause":
		return ports.TogglePause(), nil
	case "f", "forward":
		return ports.SeekRelative(step), nil
	case "b", "back":
		return ports.SeekRelative(-step), nil
	case "s", "seek":
		v, err := arg()
		if err != nil {
			return ports.Command{}, err
		}
		return ports.SeekAbsolute(v), nil
	case "v", "volume":
		v, err := arg()
		if err != nil {
			return ports.Command{}, err
		}
		return ports.SetVolume(v), nil
	case "q", "quit", "exit":
		return ports.Quit(), nil
	}
	return ports.Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
}

// Console reads commands from the terminal and pushes them to a Queue.
type Console struct {
	rl    *readline.Instance
	queue *Queue
	step  float64
	log   *logrus.Entry
}

func NewConsole(queue *Queue, step float64) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "q",
	})
	if err != nil {
		return nil, fmt.Errorf("console: creating readline failed: %w", err)
	}

	return &Console{
		rl:    rl,
		queue: queue,
		step:  step,
		log:   logrus.WithField("component", "console"),
	}, nil
}

// Run reads lines until the terminal closes or a quit is entered. Ctrl-C and
// Ctrl-D quit as well.
func (c *Console) Run() {
	fmt.Fprintln(c.rl.Stdout(), consoleHelp)

	for {
		line, err := c.rl.Readline()
		if err != nil {
			if !errors.Is(err, readline.ErrInterrupt) && !errors.Is(err, io.EOF) {
				c.log.WithError(err).Warn("reading line failed")
			}
			c.queue.Push(ports.Quit())
			return
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		cmd, err := Parse(line, c.step)
		if err != nil {
			fmt.Fprintln(c.rl.Stderr(), err)
			continue
		}

		c.queue.Push(cmd)
		if cmd.Kind == ports.CommandQuit {
			return
		}
	}
}

func (c *Console) Close() error {
	return c.rl.Close()
}

// PromptPath asks for a media file until an existing one is given. Tab
// completes paths.
func PromptPath(label string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: label + ": ",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItemDynamic(listFiles),
		),
	})
	if err != nil {
		return "", fmt.Errorf("console: creating readline failed: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			return "", err
		}

		p := strings.TrimSpace(line)
		if s, err := os.Stat(p); err == nil && !s.IsDir() {
			return p, nil
		}
		fmt.Fprintln(rl.Stderr(), " [!] Path is not a valid file.")
	}
}

func listFiles(line string) []string {
	dir, prefix := filepath.Split(line)
	if dir == "" {
		dir = "."
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		name := e.Name()
		if e.IsDir() {
			name += string(filepath.Separator)
		}
		if dir == "." && !strings.HasPrefix(line, ".") {
			out = append(out, name)
		} else {
			out = append(out, filepath.Join(dir, name))
		}
	}
	return out
}
