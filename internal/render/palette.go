package render

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	SkyColor        = color.RGBA{0, 0, 51, 255}
	SeaColor        = color.RGBA{20, 60, 140, 255}
	GridColor       = color.RGBA{200, 200, 200, 255}
	FogColor        = color.RGBA{255, 178, 204, 255}
	ProjectileColor = color.RGBA{178, 178, 178, 255}
	ExplosionColor  = color.NRGBA{255, 0, 0, 51}

	lowland   = color.RGBA{0, 100, 0, 255}
	highland  = color.RGBA{90, 170, 60, 255}
	snowCap   = color.RGBA{255, 255, 255, 255}
	sunlight  = mgl64.Vec3{0.3, 1, 0.2}.Normalize()
	ambient   = 0.35
	lowLimit  = 7.0
	highLimit = 15.0
)

// MountainColor colours terrain by its local elevation: dark green below 7,
// light green below 15 and snow above.
func MountainColor(height float64) color.RGBA {
	switch {
	case height < lowLimit:
		return lowland
	case height < highLimit:
		return highland
	default:
		return snowCap
	}
}

// Shade applies ambient plus Lambert lighting for normal n.
func Shade(c color.RGBA, n mgl64.Vec3) color.RGBA {
	l := n.Len()
	if l == 0 {
		return c
	}
	k := ambient + (1-ambient)*math.Max(0, n.Mul(1/l).Dot(sunlight))
	return color.RGBA{scale8(c.R, k), scale8(c.G, k), scale8(c.B, k), c.A}
}

// ApplyFog blends c towards the fog colour with exponential falloff.
func ApplyFog(c color.RGBA, density, distance float64) color.RGBA {
	if density <= 0 {
		return c
	}
	f := math.Exp(-density * distance)
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(f*float64(a) + (1-f)*float64(b)))
	}
	return color.RGBA{mix(c.R, FogColor.R), mix(c.G, FogColor.G), mix(c.B, FogColor.B), c.A}
}

func scale8(v uint8, k float64) uint8 {
	return uint8(math.Min(255, math.Round(float64(v)*k)))
}

// FillHeightmapRGBA rasterises elevation samples into RGBA pixels in buf:
// sea colour at or below zero and MountainColor above.
func FillHeightmapRGBA(buf []byte, heights []float64) {
	for i, h := range heights {
		base := i * 4
		if base+3 >= len(buf) {
			return
		}
		col := SeaColor
		if h > 0 {
			col = MountainColor(h)
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
