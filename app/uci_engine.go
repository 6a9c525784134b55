//starts the engine process, speaks UCI over stdin/stdout, and streams its output lines.

package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"sync"
	"time"

	"example/analysis-board/app/config"

	"github.com/rs/zerolog"
)

// ErrEngineClosed is returned by Send once the engine has been shut down.
var ErrEngineClosed = errors.New("engine closed")

const quitTimeout = 2 * time.Second

// UCIEngine is the one long-lived analysis process. Commands go out through Send;
// everything the engine prints comes back, line by line, on Lines.
type UCIEngine struct {
	log    zerolog.Logger
	cmd    *exec.Cmd
	in     *bufio.Writer
	stdin  io.Closer
	mu     sync.Mutex
	closed bool
	lines  chan string
	done   chan struct{}

	// readers tracks the stdout and stderr goroutines; cmd.Wait must not run before they finish.
	readers sync.WaitGroup
}

func NewUCIEngine(cfg config.EngineConfig, log zerolog.Logger) (*UCIEngine, error) {
	if cfg.Path == "" {
		return nil, errors.New("engine path not configured (ENGINE_PATH)")
	}

	cmd := exec.Command(cfg.Path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start engine %s: %w", cfg.Path, err)
	}

	e := newUCIEngine(log, stdin, stdout)
	e.cmd = cmd
	e.stdin = stdin
	e.readers.Add(1)
	go e.logStderr(stderr)

	if err := e.Init(cfg); err != nil {
		_ = e.Close()
		return nil, err
	}
	log.Info().Str("path", cfg.Path).Int("pid", cmd.Process.Pid).Msg("engine started")
	return e, nil
}

func newUCIEngine(log zerolog.Logger, w io.Writer, r io.Reader) *UCIEngine {
	e := &UCIEngine{
		log:   log,
		in:    bufio.NewWriter(w),
		lines: make(chan string, 512),
		done:  make(chan struct{}),
	}
	e.readers.Add(1)
	go e.readLoop(r)
	return e
}

// Init sends the handshake and options. The engine answers "uciok" on Lines.
func (e *UCIEngine) Init(cfg config.EngineConfig) error {
	cmds := []string{
		"uci",
		fmt.Sprintf("setoption name Threads value %d", cfg.Threads),
		fmt.Sprintf("setoption name Hash value %d", cfg.Hash),
		fmt.Sprintf("setoption name MultiPV value %d", cfg.MultiPV),
	}

	names := make([]string, 0, len(cfg.Options))
	for name := range cfg.Options {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmds = append(cmds, fmt.Sprintf("setoption name %s value %s", name, cfg.Options[name]))
	}

	for _, c := range cmds {
		if err := e.Send(c); err != nil {
			return fmt.Errorf("engine init: %w", err)
		}
	}
	return nil
}

// Lines is closed when the engine's stdout ends.
func (e *UCIEngine) Lines() <-chan string {
	return e.lines
}

func (e *UCIEngine) Send(cmd string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	return e.send(cmd)
}

func (e *UCIEngine) send(cmd string) error {
	e.log.Debug().Str("cmd", cmd).Msg("engine ->")
	_, err := fmt.Fprintln(e.in, cmd)
	if err != nil {
		return err
	}
	return e.in.Flush()
}

// Close asks the engine to quit and kills it if it hasn't exited in time.
func (e *UCIEngine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	_ = e.send("quit")
	if e.stdin != nil {
		_ = e.stdin.Close()
	}
	close(e.done)
	e.mu.Unlock()

	if e.cmd == nil {
		return nil
	}

	drained := make(chan struct{})
	go func() {
		e.readers.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(quitTimeout):
		e.log.Warn().Msg("engine did not quit, killing it")
		_ = e.cmd.Process.Kill()
		<-drained
	}
	return e.cmd.Wait()
}

func (e *UCIEngine) readLoop(r io.Reader) {
	defer e.readers.Done()
	defer close(e.lines)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		e.log.Trace().Str("line", line).Msg("engine <-")
		select {
		case e.lines <- line:
		case <-e.done:
			return
		}
	}
	if err := sc.Err(); err != nil {
		e.log.Warn().Err(err).Msg("engine stdout")
	}
}

func (e *UCIEngine) logStderr(r io.Reader) {
	defer e.readers.Done()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		e.log.Warn().Str("line", sc.Text()).Msg("engine stderr")
	}
}
