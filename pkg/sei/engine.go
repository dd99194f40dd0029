// Package sei is a client for settlers engines: external programs that speak
// a line-based protocol over stdin/stdout. The client starts the engine
// subprocess, performs the handshake, sends positions and decision requests,
// and parses the engine's answers.
//
// The protocol:
//
//	client: sei                          engine: id name <x>, id author <x>,
//	                                             option ..., protocol_version <n>, seiok
//	client: isready                      engine: readyok
//	client: setoption name <n> [value <v>]
//	client: newgame
//	client: position <position string>   (see catan.EncodePosition)
//	client: go <decision> [limits]       engine: info ... (any number), bestaction <answer>
//	client: stop                         engine: bestaction <answer> (when searching)
//	client: quit
package sei

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrClosed is returned when querying an engine after Close.
var ErrClosed = errors.New("sei: engine is closed")

// stopGrace is how long Go waits for an answer after sending stop.
const stopGrace = 2 * time.Second

// Engine wraps a settlers engine subprocess. Queries must not run
// concurrently; the zero value is not usable, call NewEngine.
type Engine struct {
	path string
	args []string

	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string // stdout, one entry per line; closed at EOF

	mu     sync.Mutex
	closed bool
	exited chan struct{}

	// Handshake results populated during Init.
	ID      EngineID
	Options []EngineOption
}

// NewEngine creates an Engine for the binary at path. The process is not
// started until Init is called.
func NewEngine(path string, args ...string) *Engine {
	return &Engine{
		path: path,
		args: args,
	}
}

// Init starts the engine and performs the handshake (sei -> id/option/seiok,
// isready -> readyok). ctx bounds the handshake only; the process outlives it.
func (e *Engine) Init(ctx context.Context) error {
	if err := e.start(); err != nil {
		return fmt.Errorf("sei: start engine: %w", err)
	}
	if err := e.handshake(ctx); err != nil {
		e.Close()
		return fmt.Errorf("sei: handshake: %w", err)
	}
	return nil
}

// SetOption sends a "setoption" command.
func (e *Engine) SetOption(name, value string) {
	if value != "" {
		e.send(fmt.Sprintf("setoption name %s value %s", name, value))
	} else {
		e.send(fmt.Sprintf("setoption name %s", name))
	}
}

// IsReady sends "isready" and blocks until "readyok" or ctx is done.
func (e *Engine) IsReady(ctx context.Context) error {
	e.send("isready")
	return e.readUntil(ctx, "readyok")
}

// NewGame tells the engine a new game is starting.
func (e *Engine) NewGame() {
	e.send("newgame")
}

// Position sends the game as seen by the seat the engine plays.
func (e *Engine) Position(pos string) {
	e.send("position " + pos)
}

// Go asks the engine for a decision and waits for its bestaction line,
// collecting info lines on the way. If ctx ends first, stop is sent and the
// forced answer is returned when it arrives within a short grace period.
func (e *Engine) Go(ctx context.Context, params GoParams) (*SearchResults, error) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if !e.isAlive() {
		return nil, fmt.Errorf("sei: engine process is not running")
	}

	e.send("go " + params.String())
	return e.readSearchResults(ctx)
}

// Stop interrupts the current search.
func (e *Engine) Stop() {
	e.send("stop")
}

// Close sends "quit" and waits for the process to exit, killing it after 3
// seconds. Calling Close more than once is harmless.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	if e.stdin != nil {
		fmt.Fprintf(e.stdin, "quit\n")
	}
	e.closed = true
	e.mu.Unlock()

	if e.stdin != nil {
		e.stdin.Close()
	}

	if e.exited != nil {
		select {
		case <-e.exited:
		case <-time.After(3 * time.Second):
			log.Warn().Str("engine", e.path).Msg("Engine did not exit within 3s, killing")
			if e.cmd != nil && e.cmd.Process != nil {
				e.cmd.Process.Kill()
			}
			<-e.exited
		}
	}
	return nil
}

// start launches the subprocess and a goroutine that feeds its stdout into
// e.lines.
func (e *Engine) start() error {
	e.cmd = exec.Command(e.path, e.args...)

	var err error
	e.stdin, err = e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := e.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("start process: %w", err)
	}

	e.lines = make(chan string, 64)
	e.exited = make(chan struct{})
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			e.lines <- scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			log.Debug().Err(err).Str("engine", e.path).Msg("Engine stdout closed")
		}
		close(e.lines)
	}()
	go func() {
		e.cmd.Wait()
		close(e.exited)
	}()
	return nil
}

func (e *Engine) handshake(ctx context.Context) error {
	e.send("sei")
	if err := e.readHandshake(ctx); err != nil {
		return fmt.Errorf("waiting for seiok: %w", err)
	}
	e.send("isready")
	if err := e.readUntil(ctx, "readyok"); err != nil {
		return fmt.Errorf("waiting for readyok: %w", err)
	}
	return nil
}

// readHandshake reads id, option and protocol_version lines until "seiok".
func (e *Engine) readHandshake(ctx context.Context) error {
	for {
		line, err := e.next(ctx)
		if err != nil {
			return err
		}
		switch {
		case strings.HasPrefix(line, "id name "):
			e.ID.Name = strings.TrimPrefix(line, "id name ")
		case strings.HasPrefix(line, "id author "):
			e.ID.Author = strings.TrimPrefix(line, "id author ")
		case strings.HasPrefix(line, "protocol_version "):
			fmt.Sscanf(strings.TrimPrefix(line, "protocol_version "), "%d", &e.ID.ProtocolVersion)
		case strings.HasPrefix(line, "option "):
			e.Options = append(e.Options, parseEngineOption(line))
		case line == "seiok":
			return nil
		}
	}
}

func (e *Engine) readSearchResults(ctx context.Context) (*SearchResults, error) {
	sr := &SearchResults{}
	stopped := false
	for {
		line, err := e.next(ctx)
		if err != nil {
			if stopped || ctx.Err() == nil {
				return nil, err
			}
			// ctx ended: ask for the engine's current best and allow a grace period.
			e.Stop()
			stopped = true
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(context.Background(), stopGrace)
			defer cancel()
			continue
		}
		switch {
		case strings.HasPrefix(line, "bestaction "):
			sr.BestAction = strings.TrimPrefix(line, "bestaction ")
			return sr, nil
		case strings.HasPrefix(line, "info "):
			sr.Infos = append(sr.Infos, parseInfo(line))
		}
	}
}

// readUntil reads lines until expected is seen, ignoring others.
func (e *Engine) readUntil(ctx context.Context, expected string) error {
	for {
		line, err := e.next(ctx)
		if err != nil {
			return fmt.Errorf("waiting for %q: %w", expected, err)
		}
		if line == expected {
			return nil
		}
	}
}

// next returns the next stdout line.
func (e *Engine) next(ctx context.Context) (string, error) {
	select {
	case line, ok := <-e.lines:
		if !ok {
			return "", fmt.Errorf("engine closed stdout")
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// send writes a command line to the engine's stdin.
func (e *Engine) send(line string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.stdin == nil {
		return
	}
	fmt.Fprintf(e.stdin, "%s\n", line)
}

func (e *Engine) isAlive() bool {
	if e.exited == nil {
		return false
	}
	select {
	case <-e.exited:
		return false
	default:
		return true
	}
}
