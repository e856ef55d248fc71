// internal/interfaces/renderer.go
package interfaces

import "go-tower-siege/internal/utils"

// VisualHandle is an opaque renderable owned by the rendering collaborator.
type VisualHandle interface{}

// Renderer is the rendering/asset collaborator. The simulation creates one
// visual per entity, moves it as the entity moves and removes it when the
// entity is disposed.
type Renderer interface {
	GetVisualHandle(typeKey string) VisualHandle
	PlaceVisual(h VisualHandle, worldPosition utils.Vec3, scale float64)
	RemoveVisual(h VisualHandle)
}

// NopRenderer discards every call. Headless sessions and tests use it.
type NopRenderer struct{}

func (NopRenderer) GetVisualHandle(string) VisualHandle           { return nil }
func (NopRenderer) PlaceVisual(VisualHandle, utils.Vec3, float64) {}
func (NopRenderer) RemoveVisual(VisualHandle)                     {}
