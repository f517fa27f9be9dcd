package engine

import (
	"github.com/spaghettifunk/tavolo/engine/systems"
)

// Scene is the application-provided content contract. The engine fills in
// SystemManager before FnInitialize runs; everything else is wired by the
// caller.
type Scene struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnRender          Render
	FnOnResize        OnResize
	FnOnScroll        OnScroll
}

type Initialize func() error
type Update func(deltaTime float64) error
type Render func(deltaTime float64) error
type OnResize func(width uint32, height uint32) error
type OnScroll func(delta float64)
