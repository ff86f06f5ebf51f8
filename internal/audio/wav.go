package audio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// WAV format codes from the fmt chunk.
const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE
)

// Decode parses a WAV (RIFF) byte stream into a mono waveform. Multi-channel
// audio is collapsed by averaging the channels per frame. PCM 8-bit, PCM
// 16-bit, and IEEE float 32-bit sample encodings are supported.
func Decode(data []byte) (Waveform, error) {
	if len(data) == 0 {
		return Waveform{}, ErrEmptyAudio
	}
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Waveform{}, ErrUnsupportedFormat
	}

	var (
		format     uint16
		channels   int
		sampleRate int
		bitDepth   int
		haveFmt    bool
		pcm        []byte
		haveData   bool
	)

	// Walk the RIFF chunks. Chunks are word-aligned: odd-sized chunks carry
	// a single pad byte that is not counted in the chunk size.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if size < 0 || body+size > len(data) {
			return Waveform{}, fmt.Errorf("decode wav: truncated %q chunk", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return Waveform{}, fmt.Errorf("decode wav: fmt chunk too short (%d bytes)", size)
			}
			format = binary.LittleEndian.Uint16(data[body : body+2])
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitDepth = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true
		case "data":
			pcm = data[body : body+size]
			haveData = true
		}

		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	if !haveFmt || !haveData {
		return Waveform{}, fmt.Errorf("decode wav: missing fmt or data chunk")
	}
	if channels < 1 || sampleRate <= 0 {
		return Waveform{}, fmt.Errorf("decode wav: invalid fmt (channels=%d rate=%d)", channels, sampleRate)
	}
	if len(pcm) == 0 {
		return Waveform{}, ErrEmptyAudio
	}

	samples, err := decodeSamples(format, bitDepth, channels, pcm)
	if err != nil {
		return Waveform{}, err
	}
	if len(samples) == 0 {
		return Waveform{}, ErrEmptyAudio
	}

	return Waveform{Samples: samples, SampleRate: sampleRate}, nil
}

// decodeSamples converts interleaved frames to mono float32 by averaging the
// channels of each frame.
func decodeSamples(format uint16, bitDepth, channels int, pcm []byte) ([]float32, error) {
	bytesPerSample := bitDepth / 8
	if bytesPerSample == 0 {
		return nil, fmt.Errorf("decode wav: invalid bit depth %d", bitDepth)
	}
	frameSize := bytesPerSample * channels
	numFrames := len(pcm) / frameSize

	read, err := sampleReader(format, bitDepth)
	if err != nil {
		return nil, err
	}

	out := make([]float32, numFrames)
	for i := 0; i < numFrames; i++ {
		var sum float32
		base := i * frameSize
		for ch := 0; ch < channels; ch++ {
			sum += read(pcm[base+ch*bytesPerSample:])
		}
		out[i] = sum / float32(channels)
	}
	return out, nil
}

func sampleReader(format uint16, bitDepth int) (func([]byte) float32, error) {
	switch {
	case (format == wavFormatPCM || format == wavFormatExtensible) && bitDepth == 16:
		return func(b []byte) float32 {
			return float32(int16(binary.LittleEndian.Uint16(b))) / 32768.0
		}, nil
	case format == wavFormatPCM && bitDepth == 8:
		// 8-bit WAV samples are unsigned, centered at 128.
		return func(b []byte) float32 {
			return (float32(b[0]) - 128.0) / 128.0
		}, nil
	case (format == wavFormatIEEEFloat || format == wavFormatExtensible) && bitDepth == 32:
		return func(b []byte) float32 {
			return math.Float32frombits(binary.LittleEndian.Uint32(b))
		}, nil
	default:
		return nil, fmt.Errorf("decode wav: unsupported encoding (format=%d bits=%d): %w",
			format, bitDepth, ErrUnsupportedFormat)
	}
}
