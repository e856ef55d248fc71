// internal/component/render.go
package component

import "go-tower-siege/internal/interfaces"

// Renderable links an entity to the visual the rendering collaborator
// created for it.
type Renderable struct {
	Handle interfaces.VisualHandle
	Scale  float64
}
