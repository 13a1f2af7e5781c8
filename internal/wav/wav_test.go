package wav

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeaderLayout(t *testing.T) {
	pcm := make([]byte, 48000) // one second of mono 24 kHz 16-bit audio

	out, err := Encode(pcm, Params{Channels: 1, SampleRate: 24000})
	require.NoError(t, err)
	require.Len(t, out, HeaderSize+48000)

	assert.Equal(t, "RIFF", string(out[0:4]))
	assert.Equal(t, "WAVE", string(out[8:12]))

	hdr, err := ParseHeader(out)
	require.NoError(t, err)
	assert.Equal(t, 1, hdr.Channels)
	assert.Equal(t, 24000, hdr.SampleRate)
	assert.Equal(t, 16, hdr.BitsPerSample)
	assert.Equal(t, len(pcm), hdr.DataSize)
}

func TestEncodeDerivedFields(t *testing.T) {
	cases := []struct {
		name     string
		channels int
		rate     int
	}{
		{"mono 24k", 1, 24000},
		{"mono 16k legacy", 1, 16000},
		{"stereo 44k", 2, 44100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pcm := []byte{1, 2, 3, 4, 5, 6, 7, 8}
			out, err := Encode(pcm, Params{Channels: tc.channels, SampleRate: tc.rate})
			require.NoError(t, err)

			hdr, err := ParseHeader(out)
			require.NoError(t, err)
			assert.Equal(t, tc.channels, hdr.Channels)
			assert.Equal(t, tc.rate, hdr.SampleRate)

			blockAlign := tc.channels * 2
			assert.Equal(t, blockAlign, hdr.BlockAlign)
			assert.Equal(t, tc.rate*blockAlign, hdr.ByteRate)
			assert.Equal(t, len(pcm), hdr.DataSize)

			// Payload is written verbatim after the header.
			assert.Equal(t, pcm, out[HeaderSize:])
		})
	}
}

func TestEncodeRejectsBadInput(t *testing.T) {
	_, err := Encode(nil, DefaultParams())
	assert.ErrorIs(t, err, ErrContainerWrite)

	_, err = Encode([]byte{0, 0}, Params{Channels: 0, SampleRate: 24000})
	assert.ErrorIs(t, err, ErrContainerWrite)

	_, err = Encode([]byte{0, 0}, Params{Channels: 1, SampleRate: -1})
	assert.ErrorIs(t, err, ErrContainerWrite)
}

func TestDataURIRoundTrip(t *testing.T) {
	pcm := []byte{0x10, 0x20, 0x30, 0x40}

	uri, err := DataURI(pcm, DefaultParams())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:audio/wav;base64,"))

	decoded, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(decoded[0:4]))
	assert.Equal(t, "WAVE", string(decoded[8:12]))
	assert.Equal(t, pcm, decoded[HeaderSize:])
}

func TestDecodeDataURIRejectsOtherSchemes(t *testing.T) {
	_, err := DecodeDataURI("data:audio/mpeg;base64,AAAA")
	assert.Error(t, err)

	_, err = DecodeDataURI("data:audio/wav;base64,!!!not-base64!!!")
	assert.Error(t, err)
}

func TestParseHeaderRejectsGarbage(t *testing.T) {
	_, err := ParseHeader([]byte("too short"))
	assert.Error(t, err)

	junk := make([]byte, HeaderSize)
	copy(junk, "JUNKxxxxFILE")
	_, err = ParseHeader(junk)
	assert.Error(t, err)
}
