// Package renderer draws scene render orders with the SDL2 2D renderer.
package renderer

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/engine/scene"
	"github.com/Faultbox/wirebox/internal/logger"
	"github.com/Faultbox/wirebox/internal/wireframe"
)

// Renderer paints projected shapes back to front.
type Renderer struct {
	sdl *sdl.Renderer
	log *zap.Logger

	// Shapes drawn in the last frame.
	drawn int
}

// New wraps an SDL renderer owned by the window.
func New(r *sdl.Renderer) *Renderer {
	return &Renderer{sdl: r, log: logger.Named("renderer")}
}

// Begin clears the frame.
func (r *Renderer) Begin() error {
	if err := r.setColor(ColorBackground); err != nil {
		return err
	}
	if err := r.sdl.Clear(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	r.drawn = 0
	return nil
}

// Draw projects order through proj and paints it in order.
func (r *Renderer) Draw(order []scene.Drawable, proj Projector) error {
	for _, s := range Plan(order, proj) {
		if err := r.drawShape(s); err != nil {
			return err
		}
		r.drawn++
	}
	return nil
}

// Drawn returns how many shapes the current frame has painted.
func (r *Renderer) Drawn() int {
	return r.drawn
}

// ReadPixels returns the frame as RGBA bytes, top row first.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h, err := r.sdl.GetOutputSize()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("output size: %w", err)
	}
	pixels := make([]byte, int(w)*int(h)*4)
	if err := r.sdl.ReadPixels(nil, uint32(sdl.PIXELFORMAT_ABGR8888), pixelsPtr(pixels), int(w)*4); err != nil {
		return nil, 0, 0, fmt.Errorf("read pixels: %w", err)
	}
	return pixels, int(w), int(h), nil
}

func (r *Renderer) drawShape(s Shape) error {
	switch s.Kind {
	case ShapeLine:
		if err := r.setColor(s.Color); err != nil {
			return err
		}
		a, b := s.Points[0], s.Points[1]
		return r.sdl.DrawLineF(float32(a.X), float32(a.Y), float32(b.X), float32(b.Y))

	case ShapeTriangle:
		c := sdl.Color{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 255}
		vertices := make([]sdl.Vertex, len(s.Points))
		for i, p := range s.Points {
			vertices[i] = sdl.Vertex{Position: sdl.FPoint{X: float32(p.X), Y: float32(p.Y)}, Color: c}
		}
		return r.sdl.RenderGeometry(nil, vertices, nil)

	default:
		if err := r.setColor(s.Color); err != nil {
			return err
		}
		return r.fillCircle(s.Points[0].X, s.Points[0].Y, s.Radius)
	}
}

// fillCircle draws a filled disc one horizontal span per pixel row.
func (r *Renderer) fillCircle(cx, cy, radius float64) error {
	rad := int(radius)
	for dy := -rad; dy <= rad; dy++ {
		half := float32(spanHalfWidth(radius, float64(dy)))
		y := float32(cy) + float32(dy)
		if err := r.sdl.DrawLineF(float32(cx)-half, y, float32(cx)+half, y); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) setColor(c wireframe.RGB) error {
	return r.sdl.SetDrawColor(c.R, c.G, c.B, 255)
}
