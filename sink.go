package dailylog

import "time"

// Sink is the contract between a logging front-end and its output.
// Implementations must be safe for concurrent use.
type Sink interface {
	// WriteRecord persists one formatted record. ts decides which file the
	// record belongs to. p is not retained after the call returns.
	WriteRecord(p []byte, ts time.Time) error

	// Flush forces buffered records to stable storage.
	Flush() error

	// Shutdown flushes and releases the output. Later writes fail.
	Shutdown() error
}
