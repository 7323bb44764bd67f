package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Column layout for motion files and their contextualized output.
// This file is the single source of truth for column naming and ordering.

// Input columns written by the watch app's motion recorder.
const (
	ColumnTimestamp      = "Timestamp"
	ColumnAccelMagnitude = "Accel Magnitude"
	ColumnGyroMagnitude  = "Gyro Magnitude"
)

// Output fields that do not carry a time offset.
const (
	FieldTimestamp    = "Timestamp"
	FieldCurrentAccel = "Current Accel"
	FieldCurrentGyro  = "Current Gyro"
)

const (
	// WindowSize is the number of samples on each side of the current sample (1s at 10Hz).
	WindowSize = 10

	// MinSamples is the shortest sequence that yields at least one record.
	MinSamples = 2*WindowSize + 1

	// OutputPrefix is prepended to the input file stem to name the output file.
	OutputPrefix = "Contextualized_"
)

// PreviousOffset returns the offset in seconds of the j-th sample (1-based,
// oldest first) of the previous window: 1.0, 0.9, ..., 0.1.
func PreviousOffset(j int) float64 {
	return round1(1.1 - float64(j)/10)
}

// NextOffset returns the offset in seconds of the j-th sample (1-based,
// nearest first) of the next window: 0.1, 0.2, ..., 1.0.
func NextOffset(j int) float64 {
	return round1(float64(j) / 10)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatOffset renders an offset with one decimal place ("1.0", "0.1").
func FormatOffset(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// AccelField returns the field name for an acceleration value at the given offset.
// previous selects the "-" sign.
func AccelField(offset float64, previous bool) string {
	return fmt.Sprintf("Accel %s%ss", sign(previous), FormatOffset(offset))
}

// GyroField returns the field name for a gyroscope value at the given offset.
func GyroField(offset float64, previous bool) string {
	return fmt.Sprintf("Gyro %s%ss", sign(previous), FormatOffset(offset))
}

func sign(previous bool) string {
	if previous {
		return "-"
	}
	return "+"
}

// ContextualHeader returns the full ordered field list of a ContextualRecord.
func ContextualHeader() []string {
	h := make([]string, 0, 3+4*WindowSize)
	h = append(h, FieldTimestamp)
	for j := 1; j <= WindowSize; j++ {
		off := PreviousOffset(j)
		h = append(h, AccelField(off, true), GyroField(off, true))
	}
	h = append(h, FieldCurrentAccel, FieldCurrentGyro)
	for j := 1; j <= WindowSize; j++ {
		off := NextOffset(j)
		h = append(h, AccelField(off, false), GyroField(off, false))
	}
	return h
}
