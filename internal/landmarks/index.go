// Package landmarks names the face-mesh landmark indices used by the
// expression features and defines the landmark set produced by the detector.
//
// Indices follow the 468-point MediaPipe Face Mesh topology. Left and right
// are from the subject's point of view as reported by the mesh model.
package landmarks

// Count is the number of points in a complete face-mesh landmark set.
const Count = 468

// Eyes
const (
	LeftEyeTop    = 159
	LeftEyeBottom = 145
	LeftEyeOuter  = 33
	LeftEyeInner  = 133

	RightEyeTop    = 386
	RightEyeBottom = 374
	RightEyeInner  = 362
	RightEyeOuter  = 263
)

// Eyebrows
const (
	LeftEyebrowInner = 70
	LeftEyebrowOuter = 107
	LeftEyebrowTop   = 55

	RightEyebrowInner = 300
	RightEyebrowOuter = 336
	RightEyebrowTop   = 285
)

// Mouth
const (
	MouthTop         = 13 // upper inner lip
	MouthBottom      = 14 // lower inner lip
	MouthLeft        = 78
	MouthRight       = 308
	MouthCornerLeft  = 61
	MouthCornerRight = 291
	UpperLipCenter   = 12
	LowerLipCenter   = 15
)

// Nose and cheeks
const (
	NoseTip    = 1
	NoseBridge = 6
	LeftCheek  = 116
	RightCheek = 345
)

// KeyPoints lists the landmarks worth highlighting in an overlay.
var KeyPoints = []int{
	MouthTop, MouthBottom, MouthLeft, MouthRight, MouthCornerLeft, MouthCornerRight,
	LeftEyeInner, LeftEyeOuter, RightEyeInner, RightEyeOuter,
	LeftEyeTop, LeftEyeBottom, RightEyeTop, RightEyeBottom,
	LeftEyebrowInner, LeftEyebrowTop, RightEyebrowInner, RightEyebrowTop,
	NoseTip, LeftCheek, RightCheek,
}
