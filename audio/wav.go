// Package audio wraps headerless PCM speech output in a WAV container.
package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the size of the canonical RIFF/WAVE header.
const HeaderSize = 44

// Format describes linear PCM samples.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// SpeechFormat is the PCM format returned by the speech model: 24 kHz mono
// 16-bit little-endian.
var SpeechFormat = Format{SampleRate: 24000, Channels: 1, BitsPerSample: 16}

// ByteRate returns the number of bytes per second of audio.
func (f Format) ByteRate() int {
	return f.SampleRate * f.Channels * f.BitsPerSample / 8
}

// BlockAlign returns the number of bytes per sample frame.
func (f Format) BlockAlign() int {
	return f.Channels * f.BitsPerSample / 8
}

// header is the canonical 44-byte WAV header, little-endian on the wire.
type header struct {
	ChunkID       [4]byte
	ChunkSize     uint32
	Format        [4]byte
	Subchunk1ID   [4]byte
	Subchunk1Size uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Subchunk2ID   [4]byte
	Subchunk2Size uint32
}

// WAV wraps pcm in a WAV container using SpeechFormat.
func WAV(pcm []byte) []byte {
	return WAVWithFormat(pcm, SpeechFormat)
}

// WAVWithFormat wraps pcm in a WAV container with the given format. The
// result is exactly HeaderSize+len(pcm) bytes.
func WAVWithFormat(pcm []byte, f Format) []byte {
	h := header{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(pcm)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   uint16(f.Channels),
		SampleRate:    uint32(f.SampleRate),
		ByteRate:      uint32(f.ByteRate()),
		BlockAlign:    uint16(f.BlockAlign()),
		BitsPerSample: uint16(f.BitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(pcm)),
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(pcm)))
	// Writing a fixed-size struct to a bytes.Buffer cannot fail.
	_ = binary.Write(buf, binary.LittleEndian, h)
	buf.Write(pcm)
	return buf.Bytes()
}

// Header is the decoded metadata of a WAV file.
type Header struct {
	Format
	AudioFormat int
	ByteRate    int
	BlockAlign  int
	RIFFSize    int
	DataSize    int
}

// ErrNotWAV is returned by ParseHeader for data without a canonical header.
var ErrNotWAV = errors.New("not a canonical PCM WAV file")

// ParseHeader decodes the 44-byte header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes", ErrNotWAV, len(data))
	}
	var h header
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &h); err != nil {
		return Header{}, fmt.Errorf("read wav header: %w", err)
	}
	if string(h.ChunkID[:]) != "RIFF" || string(h.Format[:]) != "WAVE" ||
		string(h.Subchunk1ID[:]) != "fmt " || string(h.Subchunk2ID[:]) != "data" {
		return Header{}, ErrNotWAV
	}
	return Header{
		Format: Format{
			SampleRate:    int(h.SampleRate),
			Channels:      int(h.NumChannels),
			BitsPerSample: int(h.BitsPerSample),
		},
		AudioFormat: int(h.AudioFormat),
		ByteRate:    int(h.ByteRate),
		BlockAlign:  int(h.BlockAlign),
		RIFFSize:    int(h.ChunkSize),
		DataSize:    int(h.Subchunk2Size),
	}, nil
}
