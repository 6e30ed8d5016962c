package asset

// Sound names used by the game.
const (
	SoundShot      = "shot"
	SoundBotImpact = "botImpact"
)

// SoundSpec describes one effect and the size of its voice pool.
type SoundSpec struct {
	Name   string
	File   string
	Voices int
	Gain   float64
}

// Manifest lists the files a Store loads.
type Manifest struct {
	Scene  string
	Sounds []SoundSpec
}

// DefaultManifest matches the embedded assets.
func DefaultManifest() Manifest {
	return Manifest{
		Scene: "arena.gltf",
		Sounds: []SoundSpec{
			{Name: SoundShot, File: "shot.wav", Voices: 30, Gain: 0.3},
			{Name: SoundBotImpact, File: "botImpact.wav", Voices: 20, Gain: 1.0},
		},
	}
}
