package renderer

import (
	gomath "math"
	"unsafe"
)

// spanHalfWidth is half the width of a circle's chord dy pixels from its
// centre.
func spanHalfWidth(radius, dy float64) float64 {
	d := radius*radius - dy*dy
	if d <= 0 {
		return 0
	}
	return gomath.Sqrt(d)
}

func pixelsPtr(pixels []byte) unsafe.Pointer {
	if len(pixels) == 0 {
		return nil
	}
	return unsafe.Pointer(&pixels[0])
}
