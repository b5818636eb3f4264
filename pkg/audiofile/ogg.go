package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jfreymuth/oggvorbis"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

const oggReadChunk = 4096

func readOgg(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return decodeOgg(file)
}

func decodeOgg(r io.Reader) (*File, error) {
	oggReader, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize a vorbis reader: %w", err)
	}
	channels := oggReader.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}

	var samples []float64
	buf := make([]float32, oggReadChunk*channels)
	mono := make([]float64, oggReadChunk)
	for {
		n, err := oggReader.Read(buf)
		if n > 0 {
			frames := n / channels
			downmix(mono[:frames], buf[:frames*channels], channels)
			samples = append(samples, mono[:frames]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to decode vorbis: %w", err)
		}
	}

	return &File{
		Container:  ContainerOgg,
		Samples:    samples,
		SampleRate: audio.SampleRate(oggReader.SampleRate()),
		Channels:   audio.Channel(channels),
	}, nil
}
