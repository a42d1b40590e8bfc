package epoch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	instants := []time.Time{
		time.UnixMilli(0).UTC(),
		time.UnixMilli(1).UTC(),
		time.Date(2024, 9, 5, 11, 9, 0, 0, time.UTC),
		time.Date(2058, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, in := range instants {
		s, err := Encode(in)
		require.NoError(t, err)
		assert.Len(t, string(s), StampWidth)

		out, err := Decode(s)
		require.NoError(t, err)
		assert.True(t, out.Equal(in), "round trip %v != %v", in, out)
	}
}

func TestEncodeFixedWidth(t *testing.T) {
	// Small millisecond values must be zero-padded to eight characters,
	// otherwise lexicographic ordering breaks.
	s, err := Encode(time.UnixMilli(35))
	require.NoError(t, err)
	assert.Equal(t, Stamp("0000000z"), s)
}

func TestLexicographicOrderMatchesChronological(t *testing.T) {
	base := time.Date(2024, 9, 5, 11, 9, 0, 0, time.UTC)
	prev, err := Encode(base)
	require.NoError(t, err)

	for _, step := range []time.Duration{
		time.Millisecond,
		time.Second,
		time.Hour,
		24 * time.Hour,
		365 * 24 * time.Hour,
	} {
		base = base.Add(step)
		next, err := Encode(base)
		require.NoError(t, err)
		assert.True(t, prev.Before(next), "%s should order before %s", prev, next)
		assert.True(t, next.After(prev))
		prev = next
	}
}

func TestEncodeRejectsOutOfRange(t *testing.T) {
	_, err := Encode(time.Date(1969, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Error(t, err)

	_, err = Encode(time.Date(2060, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Error(t, err)
}

func TestStampValidate(t *testing.T) {
	tests := []struct {
		name  string
		stamp Stamp
		ok    bool
	}{
		{"valid", "0sfn1jvq", true},
		{"too short", "0sfn1jv", false},
		{"too long", "0sfn1jvq0", false},
		{"uppercase", "0SFN1JVQ", false},
		{"punctuation", "0sfn-jvq", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stamp.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNowIsValidAndCurrent(t *testing.T) {
	before := time.Now().Add(-time.Second)
	s := Now()
	require.NoError(t, s.Validate())

	at, err := Decode(s)
	require.NoError(t, err)
	assert.True(t, at.After(before))
	assert.True(t, at.Before(time.Now().Add(time.Second)))
}
