package app

import (
	"log/slog"

	"github.com/ha1tch/vowelchart/internal/config"
	"github.com/ha1tch/vowelchart/pkg/audio"
)

// NewSequencer builds a clip sequencer over the local clip directory using
// the configured player.
func NewSequencer(cfg config.AudioConfig, logger *slog.Logger) (*audio.Sequencer, error) {
	player, err := audio.NewPlayer(cfg.Player)
	if err != nil {
		return nil, err
	}
	return audio.NewSequencer(player, audio.NewLocator(cfg.ClipDir), audio.Options{
		ReadyTimeout: cfg.ReadyTimeout,
		Logger:       logger.With("component", "audio"),
	}), nil
}
