package console

import (
	"context"
	"fmt"

	"github.com/eiannone/keyboard"
)

// RunKeys reads single key presses from the terminal. Each key maps to the line command of the
// same letter, Enter steps once and Ctrl-C or Esc quits.
func (c *Console) RunKeys(ctx context.Context) error {
	c.help()
	c.redraw()
	for ctx.Err() == nil {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		quit, err := c.HandleKey(char, key)
		if err != nil {
			fmt.Fprintln(c.out, err)
		}
		if quit {
			c.stopAutoStep()
			return nil
		}
	}
	return nil
}

func (c *Console) HandleKey(char rune, key keyboard.Key) (bool, error) {
	switch key {
	case keyboard.KeyCtrlC, keyboard.KeyEsc:
		return c.Execute("q")
	case keyboard.KeyEnter:
		return c.Execute("s")
	}
	switch char {
	case 's', 'S', 't', 'T', 'h', 'H', 'c', 'C', 'j', 'J', 'a', 'A', 'q', 'Q', '?':
		return c.Execute(string(char))
	}
	return false, fmt.Errorf("%w: key %q", ErrUnknownCommand, char)
}
