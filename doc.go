// Package arcball is an inertial arcball orientation controller and a
// spherical item menu for [Ebitengine].
//
// The core is [Controller]: feed it pointer engage, move and release events
// in screen pixels and call [Controller.Update] once per frame with the
// elapsed milliseconds. It maintains a unit quaternion orientation that
// follows the drag, keeps spinning after release with exponentially decaying
// momentum, and optionally eases a chosen direction onto a fixed rest
// direction. All per-frame factors are scaled by the elapsed time, so the
// feel does not depend on the frame rate.
//
//	c := arcball.NewController(arcball.DefaultControlConfig())
//	c.SetViewport(800, 600)
//	c.PointerEngage(400, 300)
//	c.PointerMove(420, 300)
//	state := c.Update(16.66)
//
// Quaternions and vectors are gonum's [r3.Rotation] and [r3.Vec].
//
// # Menu
//
// [Menu] lays items out on an icosphere, drives the controller from a
// [PointerSource], selects the item nearest the rest direction and snaps to
// it once the user lets go. [Run] opens a window and drives a menu for you:
//
//	menu, err := arcball.NewMenu(items, arcball.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	menu.OnActiveItemChange = func(i int, item arcball.Item) { ... }
//	arcball.Run(menu, arcball.RunConfig{
//		Title: "Menu", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself and call [Menu.Update],
// [Menu.Draw] and [Menu.SetViewport] directly.
//
// # Scripted input
//
// [Menu.InjectPress], [Menu.InjectMove], [Menu.InjectRelease] and
// [Menu.InjectDrag] queue synthetic pointer events, one per frame. A
// [ScriptRunner] loaded from YAML sequences them with waits and state
// snapshots for tests and headless simulation. In a window, its screenshot
// steps save the drawn frame with [Menu.Screenshot].
//
// # Configuration
//
// Tuning constants live in [Config], loaded from YAML with [LoadConfig] and
// [LoadConfigFile]. Unset fields keep their defaults.
//
// [Ebitengine]: https://ebitengine.org
// [r3.Rotation]: https://pkg.go.dev/gonum.org/v1/gonum/spatial/r3#Rotation
// [r3.Vec]: https://pkg.go.dev/gonum.org/v1/gonum/spatial/r3#Vec
package arcball
