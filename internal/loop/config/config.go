// Package config centralizes all tunable game parameters.
package config

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Room: a 6x6x6 box standing on the floor.
const (
	RoomSize      = 6.0
	RoomDivisions = 10
)

// RoomMin and RoomMax bound everything that moves.
var (
	RoomMin = mgl64.Vec3{-RoomSize / 2, 0, -RoomSize / 2}
	RoomMax = mgl64.Vec3{RoomSize / 2, RoomSize, RoomSize / 2}
)

// Camera
const (
	CameraFovY = 50.0 // degrees
	CameraNear = 0.1
	CameraFar  = 10.0
)

// HeadPosition is where the viewer stands.
var HeadPosition = mgl64.Vec3{0, 1.6, 0}

// Hands hang in front of the head, relative to the head rig.
var (
	PrimaryHandOffset   = mgl64.Vec3{0.25, -0.35, -0.3}
	SecondaryHandOffset = mgl64.Vec3{-0.25, -0.35, -0.3}
)

// Time scales. Menus run the world in slow motion behind them.
const (
	TimeScaleNormal = 0.8
	TimeScaleSlow   = 0.2
)

// MaxFrameDelta clamps a single raw frame delta so a stalled host cannot
// tunnel entities through walls.
const MaxFrameDelta = 100 * time.Millisecond

// Pools
const (
	PlayerProjectilePool = 10
	EnemyProjectilePool  = 20
	MaxEnemies           = 12
	ImpactPool           = 16
	Controllers          = 2
)

// FireInterval is the minimum time between two shots of one controller.
const FireInterval = 150 * time.Millisecond

// Spawning
const (
	SpawnFirstDelay    = 1.5 // seconds
	SpawnInterval      = 4.0
	SpawnMinInterval   = 1.2
	SpawnIntervalDecay = 0.95
	WaveSize           = 2
)

// Player
const (
	PlayerHealth      = 5
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Scoring
const (
	ScoreEnemyHit       = 10
	ScoreEnemyDestroyed = 100
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Terminal render area. Larger terminals get a centered, bordered view.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Session registry
const (
	ServerTickTime         = 100 * time.Millisecond // snapshot refresh period
	LeaderboardSize        = 5
	HighScoreBannerSeconds = 3.0
)

// Spectator feed
const (
	SpectatorInterval = 250 * time.Millisecond
)
