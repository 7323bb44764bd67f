package dataprocessing

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "swingctx/internal/errors"
	"swingctx/internal/shared/testutil"
	"swingctx/pkg/contracts/domain"
)

// indexedSamples returns n samples whose accel is "a<i>" and gyro "g<i>"
func indexedSamples(n int) domain.SampleSequence {
	samples := make(domain.SampleSequence, n)
	for i := range samples {
		samples[i] = domain.Sample{
			Timestamp:      "t" + strconv.Itoa(i),
			AccelMagnitude: "a" + strconv.Itoa(i),
			GyroMagnitude:  "g" + strconv.Itoa(i),
		}
	}
	return samples
}

func TestContextualize_RecordCount(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		want    int
		wantErr bool
	}{
		{name: "empty", n: 0, wantErr: true},
		{name: "one short", n: 20, wantErr: true},
		{name: "minimum", n: 21, want: 1},
		{name: "twenty five", n: 25, want: 5},
		{name: "hundred", n: 100, want: 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Contextualize(indexedSamples(tt.n))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInsufficientData))
				assert.Nil(t, records)
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestContextualize_WindowValues(t *testing.T) {
	samples := indexedSamples(30)

	records, err := Contextualize(samples)
	require.NoError(t, err)

	for k, record := range records {
		i := k + domain.WindowSize

		ts, _ := record.Get(domain.FieldTimestamp)
		assert.Equal(t, "t"+strconv.Itoa(i), ts)

		accel, _ := record.Get(domain.FieldCurrentAccel)
		gyro, _ := record.Get(domain.FieldCurrentGyro)
		assert.Equal(t, "a"+strconv.Itoa(i), accel)
		assert.Equal(t, "g"+strconv.Itoa(i), gyro)

		for j := 1; j <= domain.WindowSize; j++ {
			prev := i - domain.WindowSize + j - 1
			v, ok := record.Get(domain.AccelField(domain.PreviousOffset(j), true))
			require.True(t, ok)
			assert.Equal(t, "a"+strconv.Itoa(prev), v, "record %d previous j=%d", i, j)
			v, _ = record.Get(domain.GyroField(domain.PreviousOffset(j), true))
			assert.Equal(t, "g"+strconv.Itoa(prev), v)

			next := i + j
			v, ok = record.Get(domain.AccelField(domain.NextOffset(j), false))
			require.True(t, ok)
			assert.Equal(t, "a"+strconv.Itoa(next), v, "record %d next j=%d", i, j)
			v, _ = record.Get(domain.GyroField(domain.NextOffset(j), false))
			assert.Equal(t, "g"+strconv.Itoa(next), v)
		}
	}
}

func TestContextualize_FieldOrder(t *testing.T) {
	records, err := Contextualize(indexedSamples(23))
	require.NoError(t, err)

	want := domain.ContextualHeader()
	for _, record := range records {
		assert.Equal(t, want, record.CSVHeader())
		assert.Len(t, record.CSVRow(), len(want))
	}
}

func TestContextualize_DoesNotMutateInput(t *testing.T) {
	samples := indexedSamples(21)
	before := append(domain.SampleSequence(nil), samples...)

	_, err := Contextualize(samples)
	require.NoError(t, err)
	assert.Equal(t, before, samples)
}

func TestContextualize_Deterministic(t *testing.T) {
	samples := indexedSamples(40)

	first, err := Contextualize(samples)
	require.NoError(t, err)
	second, err := Contextualize(samples)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestContextualize_RoundTrip25(t *testing.T) {
	path := testutil.WriteSampleCSV(t, t.TempDir(), "run1.csv", 25)
	result := LoadSamples(context.Background(), path)
	require.NoError(t, result.Err)

	records, err := Contextualize(result.Samples)
	require.NoError(t, err)
	require.Len(t, records, 5)

	// records[2] is centred on input row 12
	r := records[2]
	get := func(name string) string {
		v, ok := r.Get(name)
		require.True(t, ok, name)
		return v
	}
	assert.Equal(t, "12", get("Current Accel"))
	assert.Equal(t, "24", get("Current Gyro"))
	assert.Equal(t, "2", get("Accel -1.0s"))
	assert.Equal(t, "11", get("Accel -0.1s"))
	assert.Equal(t, "13", get("Accel +0.1s"))
	assert.Equal(t, "22", get("Accel +1.0s"))
	assert.Equal(t, "44", get("Gyro +1.0s"))
}

func TestContextualize_MissingGyroColumn(t *testing.T) {
	dir := t.TempDir()
	rows := testutil.SampleRows(21)
	for i := range rows {
		rows[i] = rows[i][:2]
	}
	path := testutil.WriteCSV(t, dir, "nogyro.csv",
		[]string{domain.ColumnTimestamp, domain.ColumnAccelMagnitude}, rows)

	result := LoadSamples(context.Background(), path)
	require.NoError(t, result.Err)

	records, err := Contextualize(result.Samples)
	require.NoError(t, err)
	require.Len(t, records, 1)

	for _, f := range records[0].Fields() {
		if f.Name == domain.FieldCurrentGyro || strings.HasPrefix(f.Name, "Gyro ") {
			assert.Empty(t, f.Value, f.Name)
		}
	}
	accel, _ := records[0].Get(domain.FieldCurrentAccel)
	assert.Equal(t, "10", accel)
}
