package platform

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"sync"
)

var errNoPlayer = errors.New("no sound player available")

// Player plays alert sounds.
type Player interface {
	Play(soundPath string)
}

type commandRunner func(name string, args ...string) error

type soundPlayer struct {
	run commandRunner
	// wg tracks in-flight playback for tests.
	wg sync.WaitGroup
}

// NewPlayer returns a player that shells out to the OS audio tools.
func NewPlayer() Player {
	return newSoundPlayer(func(name string, args ...string) error {
		return exec.Command(name, args...).Run()
	})
}

func newSoundPlayer(run commandRunner) *soundPlayer {
	return &soundPlayer{run: run}
}

// Play starts playback in the background. A custom file is tried first; the
// system alert is used when none is set or it cannot be played.
func (player *soundPlayer) Play(soundPath string) {
	player.wg.Add(1)
	go func() {
		defer player.wg.Done()
		if soundPath != "" {
			err := player.playFile(soundPath)
			if err == nil {
				return
			}
			log.Printf("play %s: %v", soundPath, err)
		}
		if err := player.tryCommands(defaultSoundCommands()); err != nil {
			log.Printf("play alert sound: %v", err)
		}
	}()
}

func (player *soundPlayer) playFile(soundPath string) error {
	if _, err := os.Stat(soundPath); err != nil {
		return fmt.Errorf("sound file: %w", err)
	}
	return player.tryCommands(fileSoundCommands(soundPath))
}

func (player *soundPlayer) tryCommands(commands [][]string) error {
	err := errNoPlayer
	for _, command := range commands {
		if runErr := player.run(command[0], command[1:]...); runErr != nil {
			err = fmt.Errorf("%s: %w", command[0], runErr)
			continue
		}
		return nil
	}
	return err
}
