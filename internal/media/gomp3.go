package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// pcmFrame is one stereo 16-bit little-endian frame as go-mp3 emits it.
const pcmFrame = 4

// recording decodes a fully downloaded MP3 held in memory. Holding the whole
// file lets go-mp3 count samples, which gives recordings a duration and
// sample-accurate seeking.
type recording struct {
	data   *bytes.Reader
	dec    *mp3.Decoder
	format beep.Format
	pcm    []byte
	err    error
}

// decodeRecording prepares data for playback.
func decodeRecording(data []byte) (*recording, beep.Format, error) {
	if len(data) == 0 {
		return nil, beep.Format{}, errors.New("empty recording")
	}
	r := bytes.NewReader(data)
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode recording: %w", err)
	}
	if dec.SampleRate() <= 0 {
		return nil, beep.Format{}, fmt.Errorf("decode recording: bad sample rate %d", dec.SampleRate())
	}
	format := beep.Format{
		SampleRate:  beep.SampleRate(dec.SampleRate()),
		NumChannels: 2,
		Precision:   2,
	}
	return &recording{data: r, dec: dec, format: format}, format, nil
}

// Stream fills samples from the decoder. It reports false once the
// recording is exhausted or decoding failed.
func (r *recording) Stream(samples [][2]float64) (int, bool) {
	if r.err != nil {
		return 0, false
	}
	want := len(samples) * pcmFrame
	if cap(r.pcm) < want {
		r.pcm = make([]byte, want)
	}
	buf := r.pcm[:want]

	got, err := io.ReadFull(r.dec, buf)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
	default:
		r.err = err
		return 0, false
	}

	frames := got / pcmFrame
	for i := range frames {
		frame := buf[i*pcmFrame:]
		samples[i][0] = pcmToFloat(frame[0:2])
		samples[i][1] = pcmToFloat(frame[2:4])
	}
	return frames, frames > 0
}

func pcmToFloat(b []byte) float64 {
	return float64(int16(binary.LittleEndian.Uint16(b))) / 32768 //nolint:gosec // signed PCM
}

func (r *recording) Err() error { return r.err }

// Len is the total number of samples, 0 when go-mp3 cannot tell.
func (r *recording) Len() int {
	return int(max(r.dec.SampleCount(), 0))
}

func (r *recording) Position() int {
	return int(r.dec.SamplePosition())
}

// Seek moves to sample p, clamped to the recording, and clears a previous
// decode error so playback can continue from there.
func (r *recording) Seek(p int) error {
	p = min(max(p, 0), r.Len())
	if err := r.dec.SeekToSample(int64(p)); err != nil {
		return fmt.Errorf("seek recording: %w", err)
	}
	r.err = nil
	return nil
}

// Close drops the decoded data; the bytes were never backed by a file.
func (r *recording) Close() error {
	r.data.Reset(nil)
	return nil
}

var _ beep.StreamSeekCloser = (*recording)(nil)
