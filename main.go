package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tavolo/engine"
	"github.com/spaghettifunk/tavolo/engine/config"
	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/scene"
)

func main() {
	cfg, err := config.Load("tavolo.toml")
	if err != nil {
		panic(err)
	}
	core.LogSetLevel(core.ParseLogLevel(cfg.Log.Level))

	s := newScene(cfg)

	eng, err := engine.New(s)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = eng.Shutdown()
	}()

	if err := eng.Run(); err != nil {
		panic(err)
	}

	if err := eng.Shutdown(); err != nil {
		panic(err)
	}
}

// newScene wires the tabletop orchestrator into the engine's scene
// callbacks. The Tabletop is created lazily in FnInitialize because the
// system manager does not exist until the engine has a GL context.
func newScene(cfg *config.Config) *engine.Scene {
	s := &engine.Scene{
		ApplicationConfig: &engine.ApplicationConfig{
			StartPosX:        cfg.Window.PosX,
			StartPosY:        cfg.Window.PosY,
			StartWidth:       cfg.Window.Width,
			StartHeight:      cfg.Window.Height,
			Name:             cfg.Window.Title,
			LogLevel:         core.ParseLogLevel(cfg.Log.Level),
			AssetDir:         cfg.Assets.Dir,
			ShadowResolution: cfg.Shadow.Resolution,
		},
	}

	var tabletop *scene.Tabletop

	s.FnInitialize = func() error {
		tabletop = scene.NewTabletop(s.SystemManager)
		return tabletop.Prepare(cfg.Shadow.Resolution)
	}
	s.FnUpdate = func(deltaTime float64) error {
		return tabletop.Update(deltaTime)
	}
	s.FnRender = func(deltaTime float64) error {
		return tabletop.Render(deltaTime)
	}
	s.FnOnResize = func(width, height uint32) error {
		return tabletop.OnResize(width, height)
	}
	s.FnOnScroll = func(delta float64) {
		tabletop.Camera().ProcessMouseScroll(float32(delta))
	}

	return s
}
