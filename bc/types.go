package bc

import "strings"

// FaceType is the physics-consistent classification of a boundary face,
// derived once per outer iteration from the per-variable codes.
type FaceType uint16

const (
	FaceUndefined FaceType = iota

	// Flow boundaries
	FaceInlet
	FaceConvectiveInlet
	FaceOutlet
	FaceFreeOutlet
	FaceSmoothWall
	FaceRoughWall
	FaceSymmetry
	FaceCoupled // internal or external coupling partner
	FaceFreeSurface

	// ALE mesh-motion boundaries
	FaceALEFixed
	FaceALESliding
	FaceALEImposedVelocity
	FaceALEImposedDisplacement
	FaceALEFreeSurface
)

func (t FaceType) String() string {
	names := map[FaceType]string{
		FaceUndefined:              "Undefined",
		FaceInlet:                  "Inlet",
		FaceConvectiveInlet:        "ConvectiveInlet",
		FaceOutlet:                 "Outlet",
		FaceFreeOutlet:             "FreeOutlet",
		FaceSmoothWall:             "SmoothWall",
		FaceRoughWall:              "RoughWall",
		FaceSymmetry:               "Symmetry",
		FaceCoupled:                "Coupled",
		FaceFreeSurface:            "FreeSurface",
		FaceALEFixed:               "ALEFixed",
		FaceALESliding:             "ALESliding",
		FaceALEImposedVelocity:     "ALEImposedVelocity",
		FaceALEImposedDisplacement: "ALEImposedDisplacement",
		FaceALEFreeSurface:         "ALEFreeSurface",
	}
	if name, ok := names[t]; ok {
		return name
	}
	return "Unknown"
}

// FaceTypeNameMap maps case-file boundary names to face types; keys are
// lowercase for case-insensitive matching. Applications may extend it for
// mesh-specific naming conventions.
var FaceTypeNameMap = map[string]FaceType{
	"inlet":            FaceInlet,
	"inflow":           FaceInlet,
	"velocity_inlet":   FaceInlet,
	"convective_inlet": FaceConvectiveInlet,
	"outlet":           FaceOutlet,
	"outflow":          FaceOutlet,
	"exit":             FaceOutlet,
	"free_outlet":      FaceFreeOutlet,
	"wall":             FaceSmoothWall,
	"no_slip":          FaceSmoothWall,
	"smooth_wall":      FaceSmoothWall,
	"rough_wall":       FaceRoughWall,
	"symmetry":         FaceSymmetry,
	"symmetric":        FaceSymmetry,
	"coupled":          FaceCoupled,
	"free_surface":     FaceFreeSurface,
	"ale_fixed":        FaceALEFixed,
	"ale_sliding":      FaceALESliding,
	"ale_velocity":     FaceALEImposedVelocity,
	"ale_displacement": FaceALEImposedDisplacement,
	"ale_free_surface": FaceALEFreeSurface,
}

// ParseFaceType converts a boundary name to its face type; unknown names
// classify as smooth walls, the safe default.
func ParseFaceType(name string) FaceType {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if t, ok := FaceTypeNameMap[lowerName]; ok {
		return t
	}
	return FaceSmoothWall
}
