package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"elevsim/src/logger"
	"elevsim/src/report"
	"elevsim/src/timer"
	"elevsim/src/types"

	"github.com/xyproto/randomstring"
)

var Log = logger.GetLogger()

const (
	MaxSteps          = 1000
	MaxRandomRequests = 100
	sessionIDLen      = 8
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgument    = errors.New("bad argument")
	ErrNoAutoStep     = errors.New("auto-step is not available")
)

// Simulation is what the console drives. *executor.Executor implements it.
type Simulation interface {
	AddRequest(r types.Request) error
	StepN(n int) (types.BuildingStatus, error)
	StartSystem() error
	StopSystem() error
	Status() types.BuildingStatus
}

type Console struct {
	sim       Simulation
	out       io.Writer
	gen       *Generator
	autoStep  chan<- timer.TimerAction
	auto      bool
	clear     bool
	sessionID string
}

type Option func(*Console)

// WithAutoStep lets the a command start and stop periodic ticks.
func WithAutoStep(action chan<- timer.TimerAction) Option {
	return func(c *Console) { c.autoStep = action }
}

func WithSeed(seed uint64) Option {
	return func(c *Console) { c.gen = NewGenerator(c.sim.Status().NumFloors, seed) }
}

// WithClearScreen clears the terminal before every redraw.
func WithClearScreen(clear bool) Option {
	return func(c *Console) { c.clear = clear }
}

func WithSessionID(id string) Option {
	return func(c *Console) { c.sessionID = id }
}

func New(sim Simulation, out io.Writer, opts ...Option) *Console {
	c := &Console{sim: sim, out: out}
	for _, opt := range opts {
		opt(c)
	}
	if c.gen == nil {
		c.gen = NewGenerator(sim.Status().NumFloors, rand.Uint64())
	}
	if c.sessionID == "" {
		c.sessionID = randomstring.EnglishFrequencyString(sessionIDLen)
		Log.Info().Msgf("No session identifier provided, generated \"%v\"", c.sessionID)
	}
	return c
}

func (c *Console) SessionID() string {
	return c.sessionID
}

// Execute runs one command line. It reports whether the session should end.
// Requests the building rejects are printed, not returned.
func (c *Console) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd := "s"
	if len(fields) > 0 {
		cmd = strings.ToLower(fields[0])
	}
	args := fields[min(1, len(fields)):]

	switch cmd {
	case "s":
		n, err := optionalCount(args, 1, MaxSteps)
		if err != nil {
			return false, err
		}
		if _, err := c.sim.StepN(n); err != nil {
			return false, err
		}
		c.redraw()
	case "r":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: usage r <from> <to>", ErrBadArgument)
		}
		from, err1 := strconv.Atoi(args[0])
		to, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil {
			return false, fmt.Errorf("%w: floors must be integers", ErrBadArgument)
		}
		c.addRequest(types.Request{StartFloor: from, EndFloor: to})
		c.redraw()
	case "t":
		n, err := optionalCount(args, 1, MaxRandomRequests)
		if err != nil {
			return false, err
		}
		for range n {
			if !c.addRequest(c.gen.Random()) {
				fmt.Fprintln(c.out, "No further requests will be generated")
				break
			}
		}
		c.redraw()
	case "h":
		if err := c.sim.StopSystem(); err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, "Halting the operations of the building")
		c.redraw()
	case "c":
		if err := c.sim.StartSystem(); err != nil {
			fmt.Fprintln(c.out, err)
		} else {
			fmt.Fprintln(c.out, "Continuing the operations of the building")
		}
		c.redraw()
	case "j":
		return false, report.Encode(c.out, c.sim.Status())
	case "a":
		return false, c.toggleAutoStep()
	case "?", "help":
		c.help()
	case "q":
		fmt.Fprintln(c.out, "Quitting the simulation")
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
	return false, nil
}

// Run reads commands line by line until q, end of input or ctx is cancelled.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.help()
	c.redraw()
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}
		quit, err := c.Execute(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.out, err)
			Log.Debug().Err(err).Msg("Command failed")
		}
		if quit {
			c.stopAutoStep()
			return nil
		}
	}
}

// Redraw prints the building panel. It is also the tick callback of the auto-stepper.
func (c *Console) Redraw() {
	c.redraw()
}

func (c *Console) redraw() {
	if c.clear {
		fmt.Fprint(c.out, report.ClearScreen)
	}
	fmt.Fprint(c.out, report.Building(c.sim.Status()))
}

func (c *Console) addRequest(r types.Request) bool {
	if err := c.sim.AddRequest(r); err != nil {
		fmt.Fprintf(c.out, "Request %s was rejected: %v\n", r, err)
		return false
	}
	return true
}

func (c *Console) toggleAutoStep() error {
	if c.autoStep == nil {
		return ErrNoAutoStep
	}
	c.auto = !c.auto
	if c.auto {
		c.autoStep <- timer.Start
		fmt.Fprintln(c.out, "Auto-step on")
	} else {
		c.autoStep <- timer.Stop
		fmt.Fprintln(c.out, "Auto-step off")
	}
	return nil
}

func (c *Console) stopAutoStep() {
	if c.auto {
		c.autoStep <- timer.Stop
		c.auto = false
	}
}

func (c *Console) help() {
	fmt.Fprintf(c.out, "Session %s. Commands:\n", c.sessionID)
	fmt.Fprintf(c.out, "  s [n]      step the building n times (default 1, max %d), an empty line steps once\n", MaxSteps)
	fmt.Fprintln(c.out, "  r <f> <t>  request an elevator from floor f to floor t")
	fmt.Fprintf(c.out, "  t [n]      add n random requests (default 1, max %d)\n", MaxRandomRequests)
	fmt.Fprintln(c.out, "  h          halt the operations of the building")
	fmt.Fprintln(c.out, "  c          continue the operations of the building")
	fmt.Fprintln(c.out, "  j          print the status as JSON")
	fmt.Fprintln(c.out, "  a          toggle auto-step")
	fmt.Fprintln(c.out, "  q          quit the simulation")
}

func optionalCount(args []string, def, limit int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("%w: count must be between 1 and %d, got %q", ErrBadArgument, limit, args[0])
	}
	return n, nil
}
