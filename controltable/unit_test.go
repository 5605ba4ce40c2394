package controltable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDegreeRoundTrip4096(t *testing.T) {
	// spec §8 scenario 6: resolution=4096, 180 <-> 2048.
	p := Params{Resolution: 4096}
	raw, err := ToRaw(180, DEGREE, p)
	require.NoError(t, err)
	require.Equal(t, int64(2048), raw)

	deg, err := FromRaw(raw, DEGREE, p)
	require.NoError(t, err)
	require.Equal(t, float64(180), deg)
}

func TestDegreeRoundTrip1024(t *testing.T) {
	// spec §8 scenario 6: resolution=1024, 90 <-> 256.
	p := Params{Resolution: 1024}
	raw, err := ToRaw(90, DEGREE, p)
	require.NoError(t, err)
	require.Equal(t, int64(256), raw)

	deg, err := FromRaw(raw, DEGREE, p)
	require.NoError(t, err)
	require.Equal(t, float64(90), deg)
}

func TestBaudLookupFailureIsPrecondition(t *testing.T) {
	p := Params{Bauds: map[int64]int64{1000000: 1}}
	_, err := ToRaw(9600, BAUD, p)
	require.Error(t, err)
}

func TestBaudRoundTrip(t *testing.T) {
	p := Params{Bauds: map[int64]int64{1000000: 1, 57600: 34}}
	raw, err := ToRaw(57600, BAUD, p)
	require.NoError(t, err)
	require.Equal(t, int64(34), raw)

	bps, err := FromRaw(raw, BAUD, p)
	require.NoError(t, err)
	require.Equal(t, float64(57600), bps)
}
