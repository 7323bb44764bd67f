package dataprocessing

import (
	apperrors "swingctx/internal/errors"
	"swingctx/pkg/contracts/domain"
)

// Contextualize builds one record for every sample that has a full window of
// domain.WindowSize samples on both sides. Edge samples are dropped, so a
// sequence of n samples yields n-2*WindowSize records in input order.
// Sequences shorter than domain.MinSamples produce an INSUFFICIENT_DATA error.
func Contextualize(samples domain.SampleSequence) (domain.ContextualRecordSequence, error) {
	if !samples.Sufficient() {
		return nil, apperrors.NewInsufficientDataError(samples.Len(), domain.MinSamples)
	}

	records := make(domain.ContextualRecordSequence, 0, samples.EligibleCount())
	for i := domain.WindowSize; i < len(samples)-domain.WindowSize; i++ {
		records = append(records, contextualizeAt(samples, i))
	}
	return records, nil
}

// contextualizeAt builds the record centred on samples[i]. The caller
// guarantees a full window on each side.
func contextualizeAt(samples domain.SampleSequence, i int) domain.ContextualRecord {
	previous := samples[i-domain.WindowSize : i]
	next := samples[i+1 : i+1+domain.WindowSize]
	current := samples[i]

	fields := make([]domain.Field, 0, 3+4*domain.WindowSize)
	fields = append(fields, domain.Field{Name: domain.FieldTimestamp, Value: current.Timestamp})

	// previous is oldest first, so previous[0] sits at -1.0s
	for j, s := range previous {
		off := domain.PreviousOffset(j + 1)
		fields = append(fields,
			domain.Field{Name: domain.AccelField(off, true), Value: s.AccelMagnitude},
			domain.Field{Name: domain.GyroField(off, true), Value: s.GyroMagnitude},
		)
	}

	fields = append(fields,
		domain.Field{Name: domain.FieldCurrentAccel, Value: current.AccelMagnitude},
		domain.Field{Name: domain.FieldCurrentGyro, Value: current.GyroMagnitude},
	)

	for j, s := range next {
		off := domain.NextOffset(j + 1)
		fields = append(fields,
			domain.Field{Name: domain.AccelField(off, false), Value: s.AccelMagnitude},
			domain.Field{Name: domain.GyroField(off, false), Value: s.GyroMagnitude},
		)
	}

	return domain.NewContextualRecord(fields...)
}
