package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/obj"
)

const stickDeadzone = 0.2

// deviceInput reads the keyboard and the first gamepad once per tick.
type deviceInput struct {
	tracker obj.ButtonTracker
}

func (d *deviceInput) Poll() obj.Intent {
	return d.tracker.Update(readDevices())
}

func readDevices() obj.RawInput {
	left := ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	right := ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	raw := obj.RawInput{
		Jump:     ebiten.IsKeyPressed(ebiten.KeySpace),
		Dash:     ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyK),
		Shoot:    ebiten.IsKeyPressed(ebiten.KeyJ),
		Uppercut: ebiten.IsKeyPressed(ebiten.KeyL),
	}
	if left {
		raw.Axis -= 1
	}
	if right {
		raw.Axis += 1
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			raw.Axis = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			raw.Axis = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			raw.Axis = 1
		}

		raw.Jump = raw.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		raw.Dash = raw.Dash || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		raw.Shoot = raw.Shoot || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
		raw.Uppercut = raw.Uppercut || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightTop)
	}
	return raw
}
