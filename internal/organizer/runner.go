// This file runs organizer actions on a background goroutine so a
// front-end can keep consuming progress lines while the pipeline
// blocks on I/O. One action at a time; panics come back as errors on
// the terminal event instead of taking the process down.

package organizer

import (
	"errors"
	"fmt"
	"sync"
)

// Task is a unit of work the Runner can execute.
type Task func(sink func(string)) (*Result, error)

// Event is one progress message from a running task. Done marks the
// terminal event, which carries the task's result and error and is
// followed by the channel closing.
type Event struct {
	Line   string
	Done   bool
	Err    error
	Result *Result
}

// Runner executes one task at a time on a background goroutine,
// streaming progress as events.
type Runner struct {
	mu      sync.Mutex
	running bool
}

// NewRunner creates an idle Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Start launches task in the background. It refuses to start while
// another task is in flight. The returned channel yields log lines,
// then a single Done event, then closes.
func (r *Runner) Start(task Task) (<-chan Event, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil, errors.New("an action is already running")
	}
	r.running = true
	r.mu.Unlock()

	events := make(chan Event, 64)
	go func() {
		var (
			result *Result
			runErr error
		)
		defer func() {
			if rec := recover(); rec != nil {
				runErr = fmt.Errorf("action panicked: %v", rec)
			}

			// Free the slot before the terminal event so a consumer
			// reacting to Done can start the next action right away.
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()

			events <- Event{Done: true, Err: runErr, Result: result}
			close(events)
		}()

		result, runErr = task(func(line string) {
			events <- Event{Line: line}
		})
	}()
	return events, nil
}

// Task packages an action as a Runner task.
func (o *Organizer) Task(action Action, seriesDir string) Task {
	return func(sink func(string)) (*Result, error) {
		return o.Run(action, seriesDir, sink)
	}
}
