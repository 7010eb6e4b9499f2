package director

const shapeScale = 300.0

// DemoScene is a square that fades in, morphs into a triangle and fades out,
// with the shape names typed in and out above them.
func DemoScene() *Scene {
	half := shapeScale / 2
	caption := []float64{0, -half - 50}
	typingSpeed := 140.0

	return &Scene{
		Version:    "1.0",
		Width:      1920,
		Height:     1080,
		FPS:        60,
		Background: "#000000",
		Objects: []ObjectSpec{
			{
				Name: "square", Kind: KindRect,
				Width: shapeScale, Height: shapeScale,
				Fill: "#c80000",
			},
			{
				Name: "triangle", Kind: KindPolygon,
				Points: [][]float64{{0, 0}, {shapeScale, 0}, {half, shapeScale}},
				At:     []float64{-half, -half},
				Fill:   "#0000c8",
			},
			{Name: "square_text", Kind: KindText, Text: "Square", Size: 50, Anchor: "middle", At: caption},
			{Name: "triangle_text", Kind: KindText, Text: "Triangle", Size: 50, Anchor: "middle", At: caption},
		},
		Entities: []EntitySpec{
			{
				Name: "square", Object: "square",
				Enter:    AnimationSpec{Kind: AnimFade, Duration: f64(2)},
				Exit:     AnimationSpec{Kind: AnimNone},
				Lifetime: f64(1),
			},
			{
				Name: "square_text", Object: "square_text",
				Enter: AnimationSpec{Kind: AnimFade, Timing: []TimingOp{
					{Op: OpSynchronize, Ref: "square.enter"},
				}},
				Exit: AnimationSpec{Kind: AnimType, WPM: typingSpeed, Reverse: true, Timing: []TimingOp{
					{Op: OpAfter, Ref: "square.exit"},
				}},
			},
			{
				Name: "triangle_text", Object: "triangle_text",
				Enter: AnimationSpec{Kind: AnimType, WPM: typingSpeed, Timing: []TimingOp{
					{Op: OpAfter, Ref: "square_text.exit"},
				}},
				Exit: AnimationSpec{Kind: AnimFade, Reverse: true, Timing: []TimingOp{
					{Op: OpSynchronize, Ref: "triangle.exit"},
				}},
			},
			{
				Name: "triangle", Object: "triangle",
				Enter: AnimationSpec{Kind: AnimMorph, From: "square", Ease: "in-out-cubic", Timing: []TimingOp{
					{Op: OpStartWith, Ref: "square_text.exit"},
					{Op: OpEndWith, Ref: "triangle_text.enter"},
				}},
				Exit:     AnimationSpec{Kind: AnimFade, Duration: f64(2), Reverse: true},
				Lifetime: f64(1),
			},
		},
		Camera: []Keyframe{
			{Time: 0, Focus: "full_view", Zoom: 1},
			{Time: 4, Focus: "shape", Zoom: 1.2},
			{Time: 8, Focus: "full_view", Zoom: 1},
		},
	}
}
