package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultParsesEmbeddedTOML(t *testing.T) {
	conf, err := Default()
	require.NoError(t, err)
	require.InDelta(t, 24027428.5714285, conf.Stream.SampleClock, 1)
	require.Equal(t, 0, conf.Stream.HardSectors)
	require.Equal(t, []int{16, 32, 48, 64, 80, 96}, conf.Retry.InitSync)
	require.Equal(t, []int{2048, 1024, 512, 256, 128, 64, 32}, conf.Retry.Resync)
}
