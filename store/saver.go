package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/ggoeuh/DAL-sub000/internal/models"
)

// Result is the outcome of one save.
type Result struct {
	Error   string `json:"error,omitempty"`
	Success bool   `json:"success"`
	err     error
}

// Err returns the underlying error of a failed save.
func (r Result) Err() error {
	return r.err
}

func resultOf(err error) Result {
	if err == nil {
		return Result{Success: true}
	}

	return Result{Error: err.Error(), err: err}
}

// Pending is a save in flight. It produces exactly one Result.
type Pending struct {
	done   chan Result
	result Result
	ready  chan struct{}
}

// Done returns a channel that receives the Result once. Use Wait when the
// result may be needed more than once.
func (p *Pending) Done() <-chan Result {
	return p.done
}

// Wait blocks until the save completes or ctx ends.
func (p *Pending) Wait(ctx context.Context) Result {
	select {
	case <-p.ready:
		return p.result
	case <-ctx.Done():
		return resultOf(ErrSaveAbandoned.Wrap(ctx.Err()))
	}
}

// Hook runs after every successful save.
type Hook func(ctx context.Context, userID string) error

// Saver persists bundles in the background. Saves complete in the order
// they were started.
type Saver struct {
	gw      Gateway
	hook    Hook
	last    *Pending
	timeout time.Duration
	mu      sync.Mutex
}

// SaverOption configures a Saver.
type SaverOption func(*Saver)

// WithHook registers a function to run after each successful save.
func WithHook(h Hook) SaverOption {
	return func(s *Saver) {
		s.hook = h
	}
}

// WithTimeout bounds each save.
func WithTimeout(d time.Duration) SaverOption {
	return func(s *Saver) {
		s.timeout = d
	}
}

// NewSaver returns a Saver writing through gw.
func NewSaver(gw Gateway, opts ...SaverOption) *Saver {
	s := &Saver{
		gw:      gw,
		timeout: 10 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Gateway returns the gateway the saver writes through.
func (s *Saver) Gateway() Gateway {
	return s.gw
}

// SaveAsync starts saving a snapshot of b and returns immediately. Each of
// then is called with the result before the Pending resolves.
func (s *Saver) SaveAsync(
	ctx context.Context,
	userID string,
	b models.Bundle,
	then ...func(Result),
) *Pending {
	p := &Pending{
		done:  make(chan Result, 1),
		ready: make(chan struct{}),
	}

	snapshot := b.Clone()

	s.mu.Lock()
	prev := s.last
	s.last = p
	s.mu.Unlock()

	go func() {
		if prev != nil {
			<-prev.ready
		}

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		err := s.gw.Save(ctx, userID, snapshot)
		if err != nil {
			slog.Error(
				"save failed",
				slog.String("user", userID),
				slog.Any("error", err),
			)
		} else if s.hook != nil {
			if hookErr := s.hook(ctx, userID); hookErr != nil {
				slog.Warn(
					"post-save command failed",
					slog.String("user", userID),
					slog.Any("error", hookErr),
				)
			}
		}

		p.result = resultOf(err)

		for _, fn := range then {
			fn(p.result)
		}

		close(p.ready)
		p.done <- p.result
	}()

	return p
}

// Save saves b and waits for the result.
func (s *Saver) Save(
	ctx context.Context,
	userID string,
	b models.Bundle,
) Result {
	return s.SaveAsync(ctx, userID, b).Wait(ctx)
}

// CommandHook returns a Hook that runs cmdline through the shell-like
// splitter with DAL_USER set to the saved user. An empty cmdline yields nil.
func CommandHook(cmdline string) (Hook, error) {
	cmdSlice, err := shellquote.Split(cmdline)
	if err != nil {
		return nil, fmt.Errorf("unable to parse settings.cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil, nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	return func(ctx context.Context, userID string) error {
		cmd := exec.CommandContext(ctx, name, args...)
		cmd.Env = append(os.Environ(), "DAL_USER="+userID)

		return cmd.Run()
	}, nil
}
