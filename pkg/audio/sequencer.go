package audio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ha1tch/vowelchart/pkg/vowel"
)

// DefaultReadyTimeout bounds how long Play waits for a clip to load before
// attempting playback anyway.
const DefaultReadyTimeout = 1200 * time.Millisecond

// PrimeWords is how many example-word clips are primed with a phoneme.
const PrimeWords = 4

// Clip is one loaded (or loading) audio resource.
type Clip interface {
	// WaitReady blocks until the clip can play or ctx is done.
	WaitReady(ctx context.Context) error
	// Play starts playback from the current position.
	Play(ctx context.Context) error
	Pause()
	Rewind()
}

// Player opens clips by location. Opening starts loading but must not
// start playback.
type Player interface {
	Open(location string) (Clip, error)
}

// Options tune a Sequencer.
type Options struct {
	ReadyTimeout time.Duration
	Logger       *slog.Logger
}

// Sequencer caches clips by location and keeps at most one clip active.
// It is safe for concurrent use.
type Sequencer struct {
	player       Player
	locator      Locator
	readyTimeout time.Duration
	log          *slog.Logger

	mu     sync.Mutex
	cache  map[string]Clip
	active Clip

	wg sync.WaitGroup
}

// NewSequencer returns a sequencer that opens clips with player and finds
// them with locator.
func NewSequencer(player Player, locator Locator, opts Options) *Sequencer {
	if opts.ReadyTimeout <= 0 {
		opts.ReadyTimeout = DefaultReadyTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Sequencer{
		player:       player,
		locator:      locator,
		readyTimeout: opts.ReadyTimeout,
		log:          opts.Logger,
		cache:        make(map[string]Clip),
	}
}

// Locator returns the sequencer's clip locator.
func (s *Sequencer) Locator() Locator {
	return s.locator
}

// clip returns the cached clip for location, opening it on first use.
func (s *Sequencer) clip(location string) (Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.cache[location]; ok {
		return c, nil
	}
	c, err := s.player.Open(location)
	if err != nil {
		return nil, err
	}
	s.cache[location] = c
	return c, nil
}

// Cached reports whether location has been opened.
func (s *Sequencer) Cached(location string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cache[location]
	return ok
}

// Prime starts loading location without playing it. Failures are logged
// and otherwise ignored.
func (s *Sequencer) Prime(location string) {
	if _, err := s.clip(location); err != nil {
		s.log.Debug("prime failed", "clip", location, "error", err)
	}
}

// PrimePhoneme loads the phoneme clip and the first few example words.
func (s *Sequencer) PrimePhoneme(p vowel.Phoneme) {
	s.Prime(s.locator.PhonemeClip(p.Key))
	for i, w := range p.Examples {
		if i == PrimeWords {
			break
		}
		s.Prime(s.locator.WordClip(w))
	}
}

// Play stops whatever is playing, waits up to the ready timeout for the
// clip to load, then plays it from the start.
func (s *Sequencer) Play(ctx context.Context, location string) error {
	c, err := s.clip(location)
	if err != nil {
		return fmt.Errorf("audio: open %s: %w", location, err)
	}

	s.mu.Lock()
	s.stopOthers(c)
	s.mu.Unlock()

	readyCtx, cancel := context.WithTimeout(ctx, s.readyTimeout)
	err = c.WaitReady(readyCtx)
	cancel()
	if ctx.Err() != nil {
		return fmt.Errorf("audio: play %s: %w", location, ctx.Err())
	}
	if err != nil {
		// Not ready in time; try anyway.
		s.log.Debug("clip not ready", "clip", location, "error", err)
	}

	s.mu.Lock()
	s.stopOthers(c)
	c.Pause()
	c.Rewind()
	s.active = c
	s.mu.Unlock()

	if err := c.Play(ctx); err != nil {
		return fmt.Errorf("audio: play %s: %w", location, err)
	}
	return nil
}

// stopOthers pauses and rewinds the active clip unless it is c.
// Callers hold s.mu.
func (s *Sequencer) stopOthers(c Clip) {
	if s.active != nil && s.active != c {
		s.active.Pause()
		s.active.Rewind()
		s.active = nil
	}
}

// PlayPhoneme plays the clip for a phoneme key.
func (s *Sequencer) PlayPhoneme(ctx context.Context, key string) error {
	return s.Play(ctx, s.locator.PhonemeClip(key))
}

// PlayWord plays the clip for an example word.
func (s *Sequencer) PlayWord(ctx context.Context, word string) error {
	return s.Play(ctx, s.locator.WordClip(word))
}

// PlayAsync plays location in the background. Errors are logged, never
// returned.
func (s *Sequencer) PlayAsync(location string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Play(context.Background(), location); err != nil {
			s.log.Warn("audio play failed", "clip", location, "error", err)
		}
	}()
}

// Stop pauses and rewinds the active clip.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopOthers(nil)
}

// Wait blocks until every PlayAsync call has returned.
func (s *Sequencer) Wait() {
	s.wg.Wait()
}
