package main

import (
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/starcatcher/internal/audio"
	"github.com/vovakirdan/starcatcher/internal/core"
	"github.com/vovakirdan/starcatcher/internal/storage"
)

const soundVolume = 0.5

// runtimeConfig builds the host config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. Failure is logged and the game
// runs without saving.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

func closeStore(store *storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing scores database", "error", err)
	}
}

// newPlayer returns the sound player and its cleanup. Audio that cannot
// start is logged and replaced with silence.
func newPlayer() (audio.Player, func()) {
	if flagMute {
		return audio.Silent{}, func() {}
	}

	sm := audio.NewSoundManager(soundVolume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return audio.Silent{}, func() {}
	}
	return sm, sm.Cleanup
}
