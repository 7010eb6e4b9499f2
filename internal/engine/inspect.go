package engine

import (
	"github.com/ivlev/shape2video/internal/timeline"
)

// Span is a run of consecutive frames with the same number of objects and
// animations.
type Span struct {
	First, Last int // inclusive frame indices
	Start, End  float64
	Objects     int
	Animations  int
}

// Summarize collapses frames into spans of equal activity.
func Summarize(frames []timeline.Frame) []Span {
	var spans []Span
	for _, f := range frames {
		if n := len(spans); n > 0 {
			s := &spans[n-1]
			if s.Objects == len(f.Objects) && s.Animations == len(f.Animations) {
				s.Last, s.End = f.Index, f.Time
				continue
			}
		}
		spans = append(spans, Span{
			First:      f.Index,
			Last:       f.Index,
			Start:      f.Time,
			End:        f.Time,
			Objects:    len(f.Objects),
			Animations: len(f.Animations),
		})
	}
	return spans
}
