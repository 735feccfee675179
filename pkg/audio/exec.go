package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// ErrNoPlayer is returned when no command-line audio player is installed.
var ErrNoPlayer = errors.New("audio: no player found")

// readyPoll is how often an ExecClip re-checks for its file.
const readyPoll = 50 * time.Millisecond

// ExecPlayer plays local clip files with an external command.
type ExecPlayer struct {
	Command string
	Args    []string
}

var playerCandidates = []ExecPlayer{
	{Command: "ffplay", Args: []string{"-nodisp", "-autoexit", "-loglevel", "error"}},
	{Command: "mpg123", Args: []string{"-q"}},
	{Command: "mpv", Args: []string{"--no-video", "--really-quiet"}},
	{Command: "paplay"},
}

// DetectPlayer finds an installed player for the current OS.
func DetectPlayer() (ExecPlayer, error) {
	switch runtime.GOOS {
	case "darwin":
		return ExecPlayer{Command: "afplay"}, nil
	case "linux", "freebsd", "openbsd":
		for _, p := range playerCandidates {
			if _, err := exec.LookPath(p.Command); err == nil {
				return p, nil
			}
		}
		return ExecPlayer{}, ErrNoPlayer
	default:
		return ExecPlayer{}, fmt.Errorf("%w on %s", ErrNoPlayer, runtime.GOOS)
	}
}

// NewPlayer resolves a configured player name. "auto" detects one, "none"
// plays nothing and anything else is taken as a command on PATH.
func NewPlayer(name string) (Player, error) {
	switch name {
	case "", "auto":
		p, err := DetectPlayer()
		if err != nil {
			return nil, err
		}
		return p, nil
	case "none":
		return Silent{}, nil
	}
	if _, err := exec.LookPath(name); err != nil {
		return nil, fmt.Errorf("audio: player %q: %w", name, err)
	}
	return ExecPlayer{Command: name}, nil
}

// Open implements Player. The file is not required to exist yet.
func (p ExecPlayer) Open(location string) (Clip, error) {
	if p.Command == "" {
		return nil, ErrNoPlayer
	}
	return &ExecClip{player: p, path: location}, nil
}

// ExecClip is a clip file played by a child process.
type ExecClip struct {
	player ExecPlayer
	path   string

	mu  sync.Mutex
	cmd *exec.Cmd
}

// WaitReady polls until the file exists.
func (c *ExecClip) WaitReady(ctx context.Context) error {
	ticker := time.NewTicker(readyPoll)
	defer ticker.Stop()
	for {
		if _, err := os.Stat(c.path); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Play starts the player process and returns once it is running.
func (c *ExecClip) Play(ctx context.Context) error {
	if _, err := os.Stat(c.path); err != nil {
		return err
	}
	args := append(append([]string{}, c.player.Args...), c.path)
	cmd := exec.Command(c.player.Command, args...)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := cmd.Start(); err != nil {
		return err
	}
	c.cmd = cmd
	go cmd.Wait()
	return nil
}

// Pause kills the running player process, if any.
func (c *ExecClip) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Process.Kill()
	}
	c.cmd = nil
}

// Rewind is a no-op: every Play starts a fresh process at the beginning.
func (c *ExecClip) Rewind() {}

// Silent is a Player whose clips are always ready and make no sound.
type Silent struct{}

// Open implements Player.
func (Silent) Open(string) (Clip, error) { return silentClip{}, nil }

type silentClip struct{}

func (silentClip) WaitReady(context.Context) error { return nil }
func (silentClip) Play(context.Context) error      { return nil }
func (silentClip) Pause()                          {}
func (silentClip) Rewind()                         {}
