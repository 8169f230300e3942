// Package shader colors surface points procedurally.
//
// A shader maps an object-space position, a unit normal and an animation
// time to an opaque color. Shaders are pure and safe for concurrent use.
package shader

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/taigrr/orrery/pkg/math3d"
)

type vec = math3d.Vec3

// ErrUnknownMaterial is returned by ParseMaterial for unrecognized names.
var ErrUnknownMaterial = errors.New("unknown material")

// Material selects one of the built-in surface shaders.
type Material uint8

const (
	Rocky Material = iota
	Gas
	Crystal
	Lava
	Ice
)

var materialNames = [...]string{
	Rocky:   "rocky",
	Gas:     "gas",
	Crystal: "crystal",
	Lava:    "lava",
	Ice:     "ice",
}

func (m Material) String() string {
	if int(m) < len(materialNames) {
		return materialNames[m]
	}
	return fmt.Sprintf("material(%d)", uint8(m))
}

// Materials lists every built-in material in declaration order.
func Materials() []Material {
	return []Material{Rocky, Gas, Crystal, Lava, Ice}
}

// ParseMaterial resolves a case-insensitive material name.
func ParseMaterial(s string) (Material, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range materialNames {
		if n == name {
			return Material(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMaterial, s)
}

// Func is a surface shader.
type Func func(pos, normal math3d.Vec3, t float64) color.RGBA

// Func returns the shader for m. Unknown materials get a flat magenta
// shader so bad input is visible instead of fatal.
func (m Material) Func() Func {
	switch m {
	case Rocky:
		return RockyShader
	case Gas:
		return GasShader
	case Crystal:
		return CrystalShader
	case Lava:
		return LavaShader
	case Ice:
		return IceShader
	default:
		return unknownShader
	}
}

// Shade evaluates the shader for m at one surface point.
func Shade(m Material, pos, normal math3d.Vec3, t float64) color.RGBA {
	return m.Func()(pos, normal, t)
}

func unknownShader(_, _ math3d.Vec3, _ float64) color.RGBA {
	return magenta
}
