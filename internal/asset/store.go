// Package asset loads the arena scene and sound effects in the background and
// reports completion once, after every load has finished.
package asset

//go:generate go tool mockgen -destination=./mocks/loader_mock.go -package=mocks . SceneLoader,SoundLoader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/vrarcade/internal/audio"
	"github.com/tomz197/vrarcade/internal/logging"
	"github.com/tomz197/vrarcade/internal/scene"
)

var (
	// ErrAlreadyLoading is returned by a second call to Load.
	ErrAlreadyLoading = errors.New("asset: load already started")
	// ErrAssetsUnavailable marks a store that cannot back a game session.
	ErrAssetsUnavailable = errors.New("asset: assets unavailable")
)

// SceneLoader loads the arena scene and resolves the meshes the game uses.
type SceneLoader interface {
	LoadScene(ctx context.Context) (*Meshes, error)
}

// SoundLoader decodes one sound file into memory.
type SoundLoader interface {
	LoadSound(ctx context.Context, file string) (*beep.Buffer, error)
}

// Meshes are the visual assets resolved from the scene.
type Meshes struct {
	Weapon      *scene.Mesh
	Enemy       *scene.Mesh
	Projectile  *scene.Mesh // player shots
	Hostile     *scene.Mesh // robot shots
	Impact      *scene.Mesh
	Environment *scene.Mesh
}

func (m *Meshes) missing() []string {
	if m == nil {
		return []string{"scene"}
	}
	var out []string
	for name, mesh := range map[string]*scene.Mesh{
		"weapon":      m.Weapon,
		"enemy":       m.Enemy,
		"projectile":  m.Projectile,
		"hostile":     m.Hostile,
		"impact":      m.Impact,
		"environment": m.Environment,
	} {
		if mesh == nil {
			out = append(out, name)
		}
	}
	return out
}

// Sounds are the effect generators the game plays.
type Sounds struct {
	Shot      *audio.SoundGenerator
	BotImpact *audio.SoundGenerator
}

// Options configures a Store.
type Options struct {
	Manifest Manifest
	Scene    SceneLoader
	Sound    SoundLoader
	Backend  audio.Backend
	Logger   *log.Logger
}

// Store runs one scene load and one load per manifest sound concurrently.
// The completion callback runs exactly once, on a background goroutine,
// after all of them have returned.
type Store struct {
	opts     Options
	onLoaded func(*Store, error)

	started atomic.Bool
	once    sync.Once
	done    chan struct{}

	meshes *Meshes
	sounds map[string]*audio.SoundGenerator
	err    error
}

// NewStore creates a store. onLoaded may be nil; Done can be used instead.
func NewStore(opts Options, onLoaded func(*Store, error)) *Store {
	if opts.Backend == nil {
		opts.Backend = &audio.Silent{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Store{
		opts:     opts,
		onLoaded: onLoaded,
		done:     make(chan struct{}),
		sounds:   make(map[string]*audio.SoundGenerator),
	}
}

// Load starts every load and returns immediately. The first failure cancels
// the loads still running and is passed to the callback.
func (s *Store) Load(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyLoading
	}

	specs := s.opts.Manifest.Sounds
	buffers := make([]*beep.Buffer, len(specs))
	var meshes *Meshes

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.opts.Scene.LoadScene(gctx)
		if err != nil {
			return fmt.Errorf("load scene %s: %w", s.opts.Manifest.Scene, err)
		}
		meshes = m
		return nil
	})
	for i, spec := range specs {
		g.Go(func() error {
			buf, err := s.opts.Sound.LoadSound(gctx, spec.File)
			if err != nil {
				return fmt.Errorf("load sound %s: %w", spec.Name, err)
			}
			buffers[i] = buf
			return nil
		})
	}

	s.opts.Logger.Debug("asset loads started", "scene", s.opts.Manifest.Scene, "sounds", len(specs))

	go func() {
		err := g.Wait()
		if err == nil {
			s.meshes = meshes
			for i, spec := range specs {
				voices := s.opts.Backend.Voices(buffers[i], spec.Voices, spec.Gain)
				s.sounds[spec.Name] = audio.NewSoundGenerator(voices)
			}
		}
		s.finish(err)
	}()
	return nil
}

func (s *Store) finish(err error) {
	s.once.Do(func() {
		s.err = err
		if err != nil {
			s.opts.Logger.Error("asset load failed", "err", err)
		} else {
			s.opts.Logger.Info("assets loaded", "sounds", len(s.sounds))
		}
		close(s.done)
		if s.onLoaded != nil {
			s.onLoaded(s, err)
		}
	})
}

// Done is closed once loading has finished, before the callback runs.
func (s *Store) Done() <-chan struct{} {
	return s.done
}

// Err returns the load error. Only meaningful after Done.
func (s *Store) Err() error {
	return s.err
}

// Meshes returns the loaded meshes, or nil before a successful load.
func (s *Store) Meshes() *Meshes {
	return s.meshes
}

// Sound returns the generator for a manifest sound name, or nil.
func (s *Store) Sound(name string) *audio.SoundGenerator {
	return s.sounds[name]
}

// Sounds returns the generators the game plays.
func (s *Store) Sounds() Sounds {
	return Sounds{
		Shot:      s.Sound(SoundShot),
		BotImpact: s.Sound(SoundBotImpact),
	}
}

// Preflight verifies that every mesh resolved and every sound can play.
// It wraps ErrAssetsUnavailable on failure.
func (s *Store) Preflight() error {
	select {
	case <-s.done:
	default:
		return fmt.Errorf("%w: still loading", ErrAssetsUnavailable)
	}
	if s.err != nil {
		return fmt.Errorf("%w: %w", ErrAssetsUnavailable, s.err)
	}
	if missing := s.meshes.missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing meshes %v", ErrAssetsUnavailable, missing)
	}
	for _, spec := range s.opts.Manifest.Sounds {
		gen := s.sounds[spec.Name]
		if gen == nil {
			return fmt.Errorf("%w: sound %s not loaded", ErrAssetsUnavailable, spec.Name)
		}
		if err := gen.Preflight(); err != nil {
			return fmt.Errorf("%w: sound %s: %w", ErrAssetsUnavailable, spec.Name, err)
		}
	}
	return nil
}
