package config

import "time"

// Settings is the process-level configuration shared by the cmd/ entry points.
// Gameplay tunables live in internal/loop/config and are not environment driven.
type Settings struct {
	LogLevel string // debug, info, warn, error

	SSHHost        string
	SSHPort        string
	SSHHostKeyPath string

	WebAddr     string // spectator HTTP listener, empty disables it
	DisplayHost string // host shown in the "ssh -p ..." hint on the landing page

	AssetsDir string // overrides the embedded assets when set
	Audio     bool   // open the sound device (local hosts only)
	Seed      int64  // 0 picks a time based seed

	ShutdownTimeout time.Duration
}

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultWebAddr     = ":8080"
)

// Load reads Settings from the environment.
func Load() Settings {
	return Settings{
		LogLevel:        GetEnv("LOG_LEVEL", "info"),
		SSHHost:         GetEnv("SSH_HOST", defaultHost),
		SSHPort:         GetEnv("SSH_PORT", defaultPort),
		SSHHostKeyPath:  GetEnv("SSH_HOST_KEY", defaultHostKeyPath),
		WebAddr:         GetEnv("WEB_ADDR", defaultWebAddr),
		DisplayHost:     GetEnv("DISPLAY_HOST", "localhost"),
		AssetsDir:       GetEnv("ASSETS_DIR", ""),
		Audio:           GetEnvBool("AUDIO", true),
		Seed:            GetEnvInt64("SEED", 0),
		ShutdownTimeout: GetEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}
