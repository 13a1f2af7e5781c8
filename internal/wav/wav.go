// Package wav wraps raw linear-PCM samples in a RIFF/WAVE container.
// No resampling or re-encoding happens here; the payload bytes are
// written verbatim into the data chunk.
package wav

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

const (
	// HeaderSize is the byte length of the canonical 44-byte header
	// (RIFF descriptor + fmt chunk + data chunk preamble).
	HeaderSize = 44

	// DefaultSampleRate matches what the Google and Gemini providers
	// return. Polly's pcm output runs at LegacySampleRate instead;
	// callers must pass the rate their provider actually produced.
	DefaultSampleRate = 24000
	LegacySampleRate  = 16000

	DefaultChannels = 1
	BitsPerSample   = 16

	dataURIPrefix = "data:audio/wav;base64,"

	pcmFormatCode = 1 // uncompressed linear PCM
	fmtChunkSize  = 16
)

// ErrContainerWrite is wrapped around any failure while assembling the
// container. Inputs are validated numeric parameters, so hitting this
// means a caller bug.
var ErrContainerWrite = errors.New("wav container write failed")

// Params describes the PCM stream being wrapped.
type Params struct {
	Channels   int
	SampleRate int
}

// DefaultParams returns mono 24 kHz, the rate used by every provider
// except Polly.
func DefaultParams() Params {
	return Params{Channels: DefaultChannels, SampleRate: DefaultSampleRate}
}

func (p Params) validate() error {
	if p.Channels <= 0 {
		return fmt.Errorf("%w: channels must be positive, got %d", ErrContainerWrite, p.Channels)
	}
	if p.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrContainerWrite, p.SampleRate)
	}
	return nil
}

// Encode produces a complete WAV byte sequence: RIFF descriptor, fmt
// chunk derived from params, and a data chunk containing pcm verbatim.
func Encode(pcm []byte, p Params) ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: empty PCM buffer", ErrContainerWrite)
	}

	blockAlign := p.Channels * BitsPerSample / 8
	byteRate := p.SampleRate * blockAlign
	dataSize := uint32(len(pcm))

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(pcm)))
	buf.WriteString("RIFF")
	writeLE(buf, uint32(HeaderSize-8)+dataSize) // file size minus RIFF preamble
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeLE(buf, uint32(fmtChunkSize))
	writeLE(buf, uint16(pcmFormatCode))
	writeLE(buf, uint16(p.Channels))
	writeLE(buf, uint32(p.SampleRate))
	writeLE(buf, uint32(byteRate))
	writeLE(buf, uint16(blockAlign))
	writeLE(buf, uint16(BitsPerSample))

	buf.WriteString("data")
	writeLE(buf, dataSize)
	buf.Write(pcm)

	return buf.Bytes(), nil
}

func writeLE(buf *bytes.Buffer, v any) {
	// bytes.Buffer never returns a write error.
	_ = binary.Write(buf, binary.LittleEndian, v)
}

// DataURI encodes pcm as a self-contained data:audio/wav;base64 URI,
// the only artifact the speech pipeline hands back to callers.
func DataURI(pcm []byte, p Params) (string, error) {
	wavBytes, err := Encode(pcm, p)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(wavBytes), nil
}

// DecodeDataURI reverses DataURI, returning the raw WAV byte sequence.
func DecodeDataURI(uri string) ([]byte, error) {
	encoded, ok := strings.CutPrefix(uri, dataURIPrefix)
	if !ok {
		return nil, fmt.Errorf("not a WAV data URI (missing %q prefix)", dataURIPrefix)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode WAV data URI: %w", err)
	}
	return data, nil
}

// Header holds the fields recovered from a WAV header.
type Header struct {
	Channels      int
	SampleRate    int
	BitsPerSample int
	ByteRate      int
	BlockAlign    int
	DataSize      int
}

// ParseHeader reads back the canonical 44-byte header written by Encode.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("buffer too short for WAV header: %d bytes", len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		return Header{}, errors.New("not a RIFF/WAVE stream")
	}
	if string(b[12:16]) != "fmt " || string(b[36:40]) != "data" {
		return Header{}, errors.New("unexpected WAV chunk layout")
	}

	le := binary.LittleEndian
	return Header{
		Channels:      int(le.Uint16(b[22:24])),
		SampleRate:    int(le.Uint32(b[24:28])),
		ByteRate:      int(le.Uint32(b[28:32])),
		BlockAlign:    int(le.Uint16(b[32:34])),
		BitsPerSample: int(le.Uint16(b[34:36])),
		DataSize:      int(le.Uint32(b[40:44])),
	}, nil
}
