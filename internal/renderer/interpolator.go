package renderer

import (
	"math"

	"github.com/fogleman/ease"

	"github.com/ivlev/shape2video/internal/director"
)

// CameraState is the camera at one instant.
type CameraState struct {
	X    float64 // scene point shown at the frame centre
	Y    float64
	Zoom float64 // 1.0 = no zoom
}

// DefaultCamera looks at the scene origin without zoom.
func DefaultCamera() CameraState {
	return CameraState{Zoom: 1}
}

// InterpolateKeyframes calculates camera state at a given time by interpolating between keyframes.
// Keyframes must be sorted by time.
func InterpolateKeyframes(keyframes []director.Keyframe, currentTime float64) CameraState {
	if len(keyframes) == 0 {
		return DefaultCamera()
	}

	// Before the first keyframe, hold it
	if currentTime <= keyframes[0].Time {
		return stateOf(keyframes[0])
	}

	// After the last keyframe, hold it
	last := keyframes[len(keyframes)-1]
	if currentTime >= last.Time {
		return stateOf(last)
	}

	// Find surrounding keyframes
	prevKf, nextKf := keyframes[0], keyframes[1]
	for i := 0; i < len(keyframes)-1; i++ {
		if currentTime >= keyframes[i].Time && currentTime < keyframes[i+1].Time {
			prevKf = keyframes[i]
			nextKf = keyframes[i+1]
			break
		}
	}

	timeDelta := nextKf.Time - prevKf.Time
	if timeDelta <= 0 {
		return stateOf(nextKf)
	}
	t := ease.InOutCubic((currentTime - prevKf.Time) / timeDelta)

	from, to := stateOf(prevKf), stateOf(nextKf)
	return CameraState{
		X:    lerp(from.X, to.X, t),
		Y:    lerp(from.Y, to.Y, t),
		Zoom: lerp(from.Zoom, to.Zoom, t),
	}
}

func stateOf(kf director.Keyframe) CameraState {
	zoom := kf.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return CameraState{X: kf.X, Y: kf.Y, Zoom: zoom}
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// FitKeyframes rescales keyframes made for a sceneW x sceneH frame so the same
// view fits an outW x outH frame. Without keyframes the fitted default camera
// is returned as a single keyframe.
func FitKeyframes(keyframes []director.Keyframe, sceneW, sceneH, outW, outH int) []director.Keyframe {
	if sceneW <= 0 || sceneH <= 0 || (sceneW == outW && sceneH == outH) {
		return keyframes
	}
	scale := math.Min(float64(outW)/float64(sceneW), float64(outH)/float64(sceneH))
	if len(keyframes) == 0 {
		return []director.Keyframe{{Zoom: scale}}
	}

	fitted := make([]director.Keyframe, len(keyframes))
	for i, kf := range keyframes {
		kf.Zoom = stateOf(kf).Zoom * scale
		fitted[i] = kf
	}
	return fitted
}
