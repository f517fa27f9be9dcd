package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spaghettifunk/tavolo/engine/assets"
	"github.com/spaghettifunk/tavolo/engine/core"
	"github.com/spaghettifunk/tavolo/engine/platform"
	"github.com/spaghettifunk/tavolo/engine/renderer"
	"github.com/spaghettifunk/tavolo/engine/renderer/opengl"
	"github.com/spaghettifunk/tavolo/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// Engine owns the frame loop: it pumps window events, advances the scene
// and swaps buffers, all on the main thread.
type Engine struct {
	currentStage   Stage
	sceneInstance  *Scene
	isRunning      bool
	isSuspended    bool
	platform       *platform.Platform
	backend        renderer.Backend
	assetManager   *assets.AssetManager
	systemManager  *systems.SystemManager
	width          uint32
	height         uint32
	clock          *core.Clock
	lastTime       float64
	lastMetricsLog float64
}

func New(s *Scene) (*Engine, error) {
	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		sceneInstance: s,
		clock:         core.NewClock(),
		platform:      platform.New(),
		backend:       opengl.New(),
		assetManager:  am,
		isRunning:     true,
		isSuspended:   false,
		width:         s.ApplicationConfig.StartWidth,
		height:        s.ApplicationConfig.StartHeight,
		lastTime:      0,
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	cfg := e.sceneInstance.ApplicationConfig

	if err := core.InputInitialize(); err != nil {
		return err
	}
	if !core.EventSystemInitialize() {
		return fmt.Errorf("failed to initialize the event system")
	}
	if err := core.MetricsInitialize(); err != nil {
		return err
	}

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	core.EventRegister(core.EVENT_CODE_RESIZED, e.onResized)
	core.EventRegister(core.EVENT_CODE_MOUSE_WHEEL, e.onScroll)
	core.EventRegister(core.EVENT_CODE_PROJECTION_CHANGED, e.onProjectionChanged)

	if err := e.platform.Startup(cfg.Name, cfg.StartPosX, cfg.StartPosY, cfg.StartWidth, cfg.StartHeight); err != nil {
		return err
	}

	// The GL context is current from here on.
	if err := e.backend.Initialize(e.width, e.height); err != nil {
		return err
	}

	assetDir := cfg.AssetDir
	if !filepath.IsAbs(assetDir) {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		assetDir = filepath.Join(wd, assetDir)
	}
	if err := e.assetManager.Initialize(assetDir); err != nil {
		return err
	}

	sm, err := systems.NewSystemManager(e.backend, e.assetManager, e.width, e.height)
	if err != nil {
		return err
	}
	e.systemManager = sm
	e.sceneInstance.SystemManager = sm

	if err := e.sceneInstance.FnInitialize(); err != nil {
		return err
	}
	if err := e.sceneInstance.FnOnResize(e.width, e.height); err != nil {
		return err
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.clock.Start()
	e.clock.Update()
	e.lastTime = e.clock.Elapsed()

	for e.isRunning {
		if !e.platform.PumpMessages() {
			e.isRunning = false
		}

		if !e.isSuspended {
			e.clock.Update()

			currentTime := e.clock.Elapsed()
			delta := currentTime - e.lastTime
			frameStartTime := platform.GetAbsoluteTime()

			if err := e.sceneInstance.FnUpdate(delta); err != nil {
				core.LogError("scene update failed, shutting down: %v", err)
				e.isRunning = false
				break
			}

			if err := e.sceneInstance.FnRender(delta); err != nil {
				core.LogError("scene render failed, shutting down: %v", err)
				e.isRunning = false
				break
			}

			e.platform.SwapBuffers()

			frameElapsedTime := platform.GetAbsoluteTime() - frameStartTime
			core.MetricsUpdate(frameElapsedTime)
			if currentTime-e.lastMetricsLog >= 5 {
				fps, frameMS := core.MetricsFrame()
				core.LogDebug("fps %.1f, frame time %.2fms", fps, frameMS)
				e.lastMetricsLog = currentTime
			}

			// Input state copying happens after all input for the frame
			// has been recorded.
			core.InputUpdate(delta)

			e.lastTime = currentTime
		}
	}

	return nil
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown

	if err := core.EventSystemShutdown(); err != nil {
		return err
	}
	if err := core.InputShutdown(); err != nil {
		return err
	}
	if e.systemManager != nil {
		if err := e.systemManager.Shutdown(); err != nil {
			return err
		}
	}
	e.assetManager.Shutdown()
	if err := e.platform.Shutdown(); err != nil {
		return err
	}

	e.currentStage = EngineStageUninitialized
	return nil
}

// GetFramebufferSize returns the width and height (in this order) of the
// application framebuffer.
func (e *Engine) GetFramebufferSize() (uint32, uint32) {
	return e.width, e.height
}

func (e *Engine) onEvent(context core.EventContext) {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("application quit requested, shutting down")
		e.isRunning = false
	}
}

func (e *Engine) onKey(context core.EventContext) {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}

	if context.Type == core.EVENT_CODE_KEY_PRESSED && ke.KeyCode == core.KEY_ESCAPE {
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}
}

func (e *Engine) onScroll(context core.EventContext) {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}
	if e.sceneInstance.FnOnScroll != nil {
		e.sceneInstance.FnOnScroll(me.Scroll)
	}
}

func (e *Engine) onProjectionChanged(context core.EventContext) {
	pe, ok := context.Data.(*core.ProjectionEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}
	mode := "orthographic"
	if pe.Perspective {
		mode = "perspective"
	}
	core.LogInfo("viewer projection switched to %s", mode)
}

func (e *Engine) onResized(context core.EventContext) {
	se, ok := context.Data.(*core.SystemEvent)
	if !ok {
		core.LogError("wrong event payload for event type `%d`", context.Type)
		return
	}

	width := se.WindowWidth
	height := se.WindowHeight
	if width == e.width && height == e.height {
		return
	}
	e.width = width
	e.height = height
	core.LogDebug("window resize: %d, %d", width, height)

	// Handle minimization
	if width == 0 || height == 0 {
		core.LogInfo("window minimized, suspending application")
		e.isSuspended = true
		return
	}
	if e.isSuspended {
		core.LogInfo("window restored, resuming application")
		e.isSuspended = false
	}
	if err := e.sceneInstance.FnOnResize(width, height); err != nil {
		core.LogError(err.Error())
	}
}
