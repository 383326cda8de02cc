package types

// Vector3 is a 3-component vector used for positions, rotations
// (euler angles) and directions.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Bounds describes the axis-aligned extent of the playable world.
type Bounds struct {
	Min Vector3 `json:"min"`
	Max Vector3 `json:"max"`
}
