package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAV(t *testing.T) {
	for _, n := range []int{0, 1, 2, 480, 48000} {
		pcm := make([]byte, n)
		for i := range pcm {
			pcm[i] = byte(i)
		}

		out := WAV(pcm)
		require.Len(t, out, HeaderSize+n)

		h, err := ParseHeader(out)
		require.NoError(t, err)
		assert.Equal(t, 24000, h.SampleRate)
		assert.Equal(t, 1, h.Channels)
		assert.Equal(t, 16, h.BitsPerSample)
		assert.Equal(t, 1, h.AudioFormat)
		assert.Equal(t, 24000*1*2, h.ByteRate)
		assert.Equal(t, 2, h.BlockAlign)
		assert.Equal(t, 36+n, h.RIFFSize)
		assert.Equal(t, n, h.DataSize)
		assert.Equal(t, pcm, out[HeaderSize:])
	}
}

func TestWAVHeaderBytes(t *testing.T) {
	out := WAV([]byte{1, 2, 3, 4})

	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, uint32(40), binary.LittleEndian.Uint32(out[4:8]))
	assert.Equal(t, "WAVE", string(out[8:12]))
	assert.Equal(t, "fmt ", string(out[12:16]))
	assert.Equal(t, uint32(16), binary.LittleEndian.Uint32(out[16:20]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[20:22]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[22:24]))
	assert.Equal(t, uint32(24000), binary.LittleEndian.Uint32(out[24:28]))
	assert.Equal(t, uint32(48000), binary.LittleEndian.Uint32(out[28:32]))
	assert.Equal(t, uint16(2), binary.LittleEndian.Uint16(out[32:34]))
	assert.Equal(t, uint16(16), binary.LittleEndian.Uint16(out[34:36]))
	assert.Equal(t, "data", string(out[36:40]))
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(out[40:44]))
}

func TestWAVWithFormat(t *testing.T) {
	f := Format{SampleRate: 44100, Channels: 2, BitsPerSample: 16}
	out := WAVWithFormat(make([]byte, 8), f)

	h, err := ParseHeader(out)
	require.NoError(t, err)
	assert.Equal(t, f, h.Format)
	assert.Equal(t, 44100*2*2, h.ByteRate)
	assert.Equal(t, 4, h.BlockAlign)
}

func TestParseHeaderRejects(t *testing.T) {
	_, err := ParseHeader([]byte("RIFF"))
	assert.ErrorIs(t, err, ErrNotWAV)

	bad := WAV(nil)
	copy(bad[8:12], "AVI ")
	_, err = ParseHeader(bad)
	assert.ErrorIs(t, err, ErrNotWAV)
}
