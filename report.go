package dailylog

import (
	"fmt"
	"os"
)

// report hands a non-fatal error to the observer and to the configured
// error handler, which runs in a goroutine to avoid blocking the writer.
// If no handler is configured, errors are printed to stderr.
func (c *config) report(err error) {
	if err == nil {
		return
	}

	if c.observer != nil {
		c.observer.ObserveError(err)
	}

	handler := c.errHandler

	if handler == nil {
		fmt.Fprintln(os.Stderr, "dailylog:", err)
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				fmt.Fprintf(os.Stderr, "dailylog: error handler panicked: %v\n", r)
			}
		}()
		handler(err)
	}()
}
