// Package state persists the scene state between runs as a flat text file of
// positional tokens.
package state

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Record is everything that can be persisted. Which fields a file carries,
// and in which order, is decided by a Layout.
type Record struct {
	ClearColor     mgl32.Vec3
	UIEnabled      bool
	CameraPosition mgl32.Vec3
	CameraFront    mgl32.Vec3
	MouseLook      bool
	PointLight     bool
	SpotLight      bool
	HDR            bool
}

// Field identifies one token slot of a Record.
type Field int

const (
	FieldClearR Field = iota
	FieldClearG
	FieldClearB
	FieldUIEnabled
	FieldPositionX
	FieldPositionY
	FieldPositionZ
	FieldFrontX
	FieldFrontY
	FieldFrontZ
	FieldMouseLook
	FieldPointLight
	FieldSpotLight
	FieldHDR
)

var fieldNames = [...]string{
	FieldClearR:     "clearColor.r",
	FieldClearG:     "clearColor.g",
	FieldClearB:     "clearColor.b",
	FieldUIEnabled:  "uiEnabled",
	FieldPositionX:  "camera.position.x",
	FieldPositionY:  "camera.position.y",
	FieldPositionZ:  "camera.position.z",
	FieldFrontX:     "camera.front.x",
	FieldFrontY:     "camera.front.y",
	FieldFrontZ:     "camera.front.z",
	FieldMouseLook:  "mouseLook",
	FieldPointLight: "pointLight",
	FieldSpotLight:  "spotLight",
	FieldHDR:        "hdr",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// float returns the float32 slot for f, or nil when f is a flag.
func (f Field) float(rec *Record) *float32 {
	switch f {
	case FieldClearR, FieldClearG, FieldClearB:
		return &rec.ClearColor[f-FieldClearR]
	case FieldPositionX, FieldPositionY, FieldPositionZ:
		return &rec.CameraPosition[f-FieldPositionX]
	case FieldFrontX, FieldFrontY, FieldFrontZ:
		return &rec.CameraFront[f-FieldFrontX]
	}
	return nil
}

// flag returns the bool slot for f, or nil when f is a float.
func (f Field) flag(rec *Record) *bool {
	switch f {
	case FieldUIEnabled:
		return &rec.UIEnabled
	case FieldMouseLook:
		return &rec.MouseLook
	case FieldPointLight:
		return &rec.PointLight
	case FieldSpotLight:
		return &rec.SpotLight
	case FieldHDR:
		return &rec.HDR
	}
	return nil
}

// Layout is the ordered list of fields a state file carries. Files have no
// header, so reader and writer must agree on the layout.
type Layout struct {
	Name   string
	Fields []Field
}

var (
	// LayoutClearColor is the default file: background colour, UI flag, camera
	// position, camera front.
	LayoutClearColor = Layout{
		Name: "clearcolor",
		Fields: []Field{
			FieldClearR, FieldClearG, FieldClearB,
			FieldUIEnabled,
			FieldPositionX, FieldPositionY, FieldPositionZ,
			FieldFrontX, FieldFrontY, FieldFrontZ,
		},
	}

	// LayoutCompact drops the background colour.
	LayoutCompact = Layout{
		Name: "compact",
		Fields: []Field{
			FieldUIEnabled,
			FieldPositionX, FieldPositionY, FieldPositionZ,
			FieldFrontX, FieldFrontY, FieldFrontZ,
		},
	}

	// LayoutExtended appends the light and mode toggles to LayoutClearColor.
	// A clearcolor file reads as a short extended file.
	LayoutExtended = Layout{
		Name: "extended",
		Fields: append(append([]Field(nil), LayoutClearColor.Fields...),
			FieldMouseLook, FieldPointLight, FieldSpotLight, FieldHDR),
	}
)

// Layouts lists the known layouts by name.
var Layouts = []Layout{LayoutClearColor, LayoutCompact, LayoutExtended}

// ParseLayout resolves a layout name from configuration.
func ParseLayout(name string) (Layout, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return LayoutClearColor, nil
	}
	for _, l := range Layouts {
		if l.Name == n {
			return l, nil
		}
	}
	return Layout{}, fmt.Errorf("unknown state layout %q", name)
}
