// Package audio plays the game's sound effects through the system speaker.
package audio

// Player is a fire-and-forget sound effect sink.
type Player interface {
	PlayPickup()
}

// Silent is a Player that plays nothing. Used when audio is muted or the
// device cannot be opened.
type Silent struct{}

// PlayPickup does nothing.
func (Silent) PlayPickup() {}
