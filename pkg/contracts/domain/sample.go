package domain

// Sample is one row of a motion file. Values are kept as the raw cell text;
// they are never parsed or validated.
type Sample struct {
	Timestamp      string `json:"timestamp"`
	AccelMagnitude string `json:"accel_magnitude"`
	GyroMagnitude  string `json:"gyro_magnitude"`
}

// SampleSequence holds samples in input row order.
type SampleSequence []Sample

// Len returns the number of samples.
func (s SampleSequence) Len() int {
	return len(s)
}

// Sufficient reports whether the sequence is long enough to contextualize.
func (s SampleSequence) Sufficient() bool {
	return len(s) >= MinSamples
}

// EligibleCount returns how many records contextualizing s produces.
func (s SampleSequence) EligibleCount() int {
	if !s.Sufficient() {
		return 0
	}
	return len(s) - 2*WindowSize
}
