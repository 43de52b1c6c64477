// Package ui draws the debug panels. The panels only talk to a Widgets
// implementation, so they can be driven by ImGui at runtime and by a fake in
// tests.
package ui

import (
	"fmt"

	"room-renderer/app"
)

// Widgets is the immediate-mode widget surface the panels need. Edit widgets
// write through their pointer and report whether the value changed.
type Widgets interface {
	Begin(name string) bool
	End()
	Text(text string)
	SliderFloat(label string, v *float32, min, max float32) bool
	DragFloat(label string, v *float32, speed, min, max float32) bool
	DragFloat3(label string, v *[3]float32, speed float32) bool
	ColorEdit3(label string, c *[3]float32) bool
	Checkbox(label string, v *bool) bool
}

// Panel titles.
const (
	SettingsPanel = "Hello window"
	CameraPanel   = "Camera info"
)

// Widget labels, shared with tests.
const (
	LabelFloat          = "Float slider"
	LabelBackground     = "Background color"
	LabelBackpackPos    = "Backpack position"
	LabelBackpackScale  = "Backpack scale"
	LabelPointConstant  = "pointLight.constant"
	LabelPointLinear    = "pointLight.linear"
	LabelPointQuadratic = "pointLight.quadratic"
	LabelSpotConstant   = "spotLight.constant"
	LabelSpotLinear     = "spotLight.linear"
	LabelSpotQuadratic  = "spotLight.quadratic"
	LabelMouseLook      = "Camera mouse update"
	LabelPointLight     = "Turn on point light"
	LabelSpotLight      = "Turn on spot light"
	LabelDirLight       = "Turn on dir light"
	LabelHDR            = "HDR"
)

const (
	MinBackpackScale float32 = 0.1
	MaxBackpackScale float32 = 4
)

const dragSpeed = 0.05

// Panels owns the widget state that lives outside app.Context.
type Panels struct {
	// Slider backs the free-standing demo slider.
	Slider float32
}

// Draw builds both panels for this frame. Every edit lands directly in ctx.
func (p *Panels) Draw(w Widgets, ctx *app.Context) {
	p.drawSettings(w, ctx)
	drawCamera(w, ctx)
}

// DrawPanels draws the panels with throwaway slider state.
func DrawPanels(w Widgets, ctx *app.Context) {
	var p Panels
	p.Draw(w, ctx)
}

func (p *Panels) drawSettings(w Widgets, ctx *app.Context) {
	if w.Begin(SettingsPanel) {
		w.Text("Hello text")
		w.SliderFloat(LabelFloat, &p.Slider, 0, 1)
		w.ColorEdit3(LabelBackground, (*[3]float32)(&ctx.ClearColor))
		w.DragFloat3(LabelBackpackPos, (*[3]float32)(&ctx.BackpackPosition), dragSpeed)
		w.DragFloat(LabelBackpackScale, &ctx.BackpackScale, dragSpeed, MinBackpackScale, MaxBackpackScale)

		point := &ctx.Lights.Point.Attenuation
		w.DragFloat(LabelPointConstant, &point.Constant, dragSpeed, 0, 1)
		w.DragFloat(LabelPointLinear, &point.Linear, dragSpeed, 0, 1)
		w.DragFloat(LabelPointQuadratic, &point.Quadratic, dragSpeed, 0, 1)

		spot := &ctx.Lights.Spot.Attenuation
		w.DragFloat(LabelSpotConstant, &spot.Constant, dragSpeed, 0, 1)
		w.DragFloat(LabelSpotLinear, &spot.Linear, dragSpeed, 0, 1)
		w.DragFloat(LabelSpotQuadratic, &spot.Quadratic, dragSpeed, 0, 1)

		w.Text(fmt.Sprintf("Exposure: %.2f (%s)", ctx.Exposure(), ctx.LightingModel))
	}
	w.End()
}

func drawCamera(w Widgets, ctx *app.Context) {
	if w.Begin(CameraPanel) {
		c := ctx.Camera
		w.Text(fmt.Sprintf("Camera position: (%f, %f, %f)", c.Position.X(), c.Position.Y(), c.Position.Z()))
		w.Text(fmt.Sprintf("(Yaw, Pitch): (%f, %f)", c.Yaw, c.Pitch))
		w.Text(fmt.Sprintf("Camera front: (%f, %f, %f)", c.Front.X(), c.Front.Y(), c.Front.Z()))
		w.Checkbox(LabelMouseLook, &ctx.MouseLookEnabled)
		w.Checkbox(LabelPointLight, &ctx.PointLightEnabled)
		w.Checkbox(LabelSpotLight, &ctx.SpotLightEnabled)
		w.Checkbox(LabelDirLight, &ctx.DirLightEnabled)
		w.Checkbox(LabelHDR, &ctx.HDR)
	}
	w.End()
}
