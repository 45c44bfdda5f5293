package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ruzzle/game"
	"github.com/plus3/ruzzle/piece"
	"github.com/plus3/ruzzle/scene"
)

func renderScene(p *scene.Params) {
	imgui.SetNextWindowPosV(imgui.NewVec2(360, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 320), imgui.CondOnce)
	if !imgui.BeginV("Scene", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Zoom: %.3f -> %.3f", p.Zoom, p.TargetZoom))
	imgui.Text(fmt.Sprintf("Scroll: (%.1f, %.1f)", p.Scroll[0], p.Scroll[1]))
	imgui.Text(fmt.Sprintf("Stroke: %.3f -> %.3f", p.StrokeWidth, p.TargetStrokeWidth))
	imgui.Text(fmt.Sprintf("Window: %dx%d", p.WindowSize.X, p.WindowSize.Y))
	imgui.Text(fmt.Sprintf("Cursor: (%.0f, %.0f)", p.Cursor[0], p.Cursor[1]))
	imgui.Separator()

	imgui.SetNextItemWidth(120)
	imgui.InputFloat("Target Zoom", &p.TargetZoom)
	imgui.SetNextItemWidth(120)
	imgui.InputFloat("Target Stroke", &p.TargetStrokeWidth)

	speed := float32(p.Speed)
	imgui.SetNextItemWidth(120)
	if imgui.InputFloat("Speed", &speed) && speed > 0 {
		p.Speed = float64(speed)
	}
	imgui.Checkbox("Draw Background", &p.DrawBackground)

	if imgui.Button("Zoom In") {
		p.ZoomIn()
	}
	imgui.SameLine()
	if imgui.Button("Zoom Out") {
		p.ZoomOut()
	}
	imgui.SameLine()
	if imgui.Button("Widen Stroke") {
		p.WidenStroke()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Gravity: last drop at %.2fs", p.Gravity.LastDrop))

	imgui.End()
}

func renderPiece(sim *game.Simulation) {
	imgui.SetNextWindowPosV(imgui.NewVec2(670, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 320), imgui.CondOnce)
	if !imgui.BeginV("Piece", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	pc := sim.Piece()
	imgui.Text(fmt.Sprintf("Kind: %s", pc.Kind))
	imgui.Text(fmt.Sprintf("Active: %t", pc.Active))
	imgui.Text(fmt.Sprintf("Position: (%d, %d)", pc.Pos.X, pc.Pos.Y))
	imgui.Text(fmt.Sprintf("Rotation: %d", pc.Rotation))
	imgui.Text(fmt.Sprintf("Resting: %t", pc.Active && pc.Resting(sim.Board())))
	imgui.Separator()
	for _, line := range strings.Split(pc.Grid.String(), "\n") {
		imgui.Text(line)
	}
	imgui.Separator()

	if imgui.Button("Left") {
		sim.RequestMove(-1, 0)
	}
	imgui.SameLine()
	if imgui.Button("Right") {
		sim.RequestMove(1, 0)
	}
	imgui.SameLine()
	if imgui.Button("Down") {
		sim.RequestMove(0, 1)
	}
	if imgui.Button("Rotate CW") {
		sim.RequestRotate(piece.Clockwise)
	}
	imgui.SameLine()
	if imgui.Button("Rotate CCW") {
		sim.RequestRotate(piece.CounterClockwise)
	}
	if imgui.Button("Hard Drop") {
		sim.RequestHardDrop()
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		sim.RequestReset()
	}

	imgui.End()
}

func renderBoard(sim *game.Simulation) {
	imgui.SetNextWindowPosV(imgui.NewVec2(940, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(220, 320), imgui.CondOnce)
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	board := sim.Board()
	imgui.Text(fmt.Sprintf("Size: %dx%d", board.Cols, board.Rows))
	imgui.Text(fmt.Sprintf("Occupied: %d / %d", board.Occupied(), board.Size()))
	imgui.Text(fmt.Sprintf("Elapsed: %.2fs  Seed: %d", sim.Elapsed(), sim.Seed()))
	imgui.Separator()
	for _, line := range strings.Split(board.String(), "\n") {
		imgui.Text(line)
	}
	imgui.Separator()
	if imgui.Button("Clear Board") {
		board.Clear()
	}

	imgui.End()
}
