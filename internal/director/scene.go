package director

// Scene is a complete animation described in YAML.
type Scene struct {
	Version    string       `yaml:"version"`
	Width      int          `yaml:"width,omitempty"`
	Height     int          `yaml:"height,omitempty"`
	FPS        int          `yaml:"fps,omitempty"`
	Background string       `yaml:"background,omitempty"`
	Objects    []ObjectSpec `yaml:"objects"`
	Statics    []string     `yaml:"statics,omitempty"`
	Entities   []EntitySpec `yaml:"entities"`
	Camera     []Keyframe   `yaml:"camera,omitempty"`

	// Dir resolves relative image sources. ReadScene sets it to the
	// directory of the scene file.
	Dir string `yaml:"-"`
}

// Object kinds.
const (
	KindPolygon = "polygon"
	KindRect    = "rect"
	KindRegular = "regular"
	KindText    = "text"
	KindQRCode  = "qrcode"
	KindImage   = "image"
)

// ObjectSpec describes one drawable. At is the centre of shapes, QR codes and
// images, and the anchor point of text.
type ObjectSpec struct {
	Name string    `yaml:"name"`
	Kind string    `yaml:"kind"`
	Z    int       `yaml:"z,omitempty"`
	At   []float64 `yaml:"at,omitempty,flow"`

	// polygon
	Points [][]float64 `yaml:"points,omitempty,flow"`
	// regular
	Sides    int     `yaml:"sides,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Rotation float64 `yaml:"rotation,omitempty"` // degrees
	// rect, image
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`

	// Outline defaults to the fill darkened by half.
	Fill    string   `yaml:"fill,omitempty"`
	Outline string   `yaml:"outline,omitempty"`
	Stroke  *float64 `yaml:"stroke,omitempty"`

	// text, qrcode
	Text   string  `yaml:"text,omitempty"`
	Size   float64 `yaml:"size,omitempty"` // font size, or QR module size
	Anchor string  `yaml:"anchor,omitempty"`
	Color  string  `yaml:"color,omitempty"`

	// image
	Source string `yaml:"source,omitempty"`
	Page   int    `yaml:"page,omitempty"`
	// Crop "content" trims the page to its detected content plus Margin
	// pixels. A blank page is kept whole.
	Crop   string `yaml:"crop,omitempty"`
	Margin int    `yaml:"margin,omitempty"`
}

// EntitySpec is an object with its enter and exit animations.
type EntitySpec struct {
	Name   string        `yaml:"name"`
	Object string        `yaml:"object"`
	Enter  AnimationSpec `yaml:"enter"`
	Exit   AnimationSpec `yaml:"exit"`
	// Lifetime places the exit this many seconds after the enter ends,
	// before the exit's timing ops run.
	Lifetime *float64 `yaml:"lifetime,omitempty"`
}

// Animation kinds.
const (
	AnimNone  = "none"
	AnimFade  = "fade"
	AnimDraw  = "draw"
	AnimMorph = "morph"
	AnimType  = "type"
)

// AnimationSpec describes an evaluator and where it sits in time. Without
// ops the window is [0, duration).
type AnimationSpec struct {
	Kind     string   `yaml:"kind,omitempty"`
	Duration *float64 `yaml:"duration,omitempty"`
	// From is the polygon object a morph starts from.
	From   string `yaml:"from,omitempty"`
	Strict bool   `yaml:"strict,omitempty"`
	// WPM sets the duration of a type animation from the text length.
	WPM     float64    `yaml:"wpm,omitempty"`
	Reverse bool       `yaml:"reverse,omitempty"`
	Ease    string     `yaml:"ease,omitempty"`
	Timing  []TimingOp `yaml:"timing,omitempty"`
}

// Timing ops.
const (
	OpDelay           = "delay"
	OpDuration        = "duration"
	OpDurationKeepEnd = "duration_keep_end"
	OpAfter           = "after"
	OpStartWith       = "start_with"
	OpEndWith         = "end_with"
	OpSynchronize     = "synchronize"
)

// TimingOp adjusts a window, either by a value or relative to another
// entity's window named "<entity>.enter" or "<entity>.exit".
type TimingOp struct {
	Op    string  `yaml:"op"`
	Ref   string  `yaml:"ref,omitempty"`
	Value float64 `yaml:"value,omitempty"`
}

// Keyframe is a camera position. X and Y are the scene point shown at the
// frame centre; Zoom 1 shows the scene at its own scale.
type Keyframe struct {
	Time  float64 `yaml:"time"`
	Focus string  `yaml:"focus,omitempty"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Zoom  float64 `yaml:"zoom"`
}

func f64(v float64) *float64 { return &v }
