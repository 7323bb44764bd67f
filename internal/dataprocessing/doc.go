// Package dataprocessing turns a motion file into contextualized records.
//
// It has two stages:
//
//  1. Loader: reads a CSV file (or the first sheet of an .xlsx workbook) and
//     projects the Timestamp, Accel Magnitude and Gyro Magnitude columns into a
//     domain.SampleSequence. Cell text is kept verbatim.
//  2. Contextualize: attaches to every sample the ten samples before it and the
//     ten after it, labeled by time offset ("Accel -1.0s" ... "Gyro +1.0s").
//
// Typical use:
//
//	result := dataprocessing.NewLoader(logger).Load(ctx, "run1.csv")
//	if !result.OK() {
//	    // report result.Err and carry on with an empty sequence
//	}
//	records, err := dataprocessing.Contextualize(result.Samples)
//
// Load failures are soft: they come back in LoadResult.Err as NOT_FOUND or
// READ AppErrors. A sequence shorter than domain.MinSamples makes Contextualize
// return an INSUFFICIENT_DATA AppError.
package dataprocessing
