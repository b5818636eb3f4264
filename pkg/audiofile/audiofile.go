// Package audiofile reads recordings into mono float samples and writes
// them back. WAV and raw PCM are supported both ways, Ogg Vorbis only for
// reading.
package audiofile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

type Container string

const (
	ContainerUndefined = Container("")
	ContainerWAV       = Container("wav")
	ContainerOgg       = Container("ogg")
	ContainerRaw       = Container("raw")
)

func (c Container) String() string {
	return string(c)
}

// ContainerFromPath guesses the container by the file extension; unknown
// extensions are treated as raw PCM.
func ContainerFromPath(path string) Container {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return ContainerWAV
	case ".ogg", ".oga":
		return ContainerOgg
	default:
		return ContainerRaw
	}
}

// File is a decoded recording, downmixed to mono.
type File struct {
	Container  Container
	Samples    []float64
	SampleRate audio.SampleRate

	// Channels is the channel count of the source before the downmix.
	Channels audio.Channel

	// BitDepth is the sample size of a WAV source in bits.
	BitDepth int

	// PCMFormat is the sample format of a raw source.
	PCMFormat audio.PCMFormat
}

// RawOptions describe headerless PCM input, which carries no metadata.
type RawOptions struct {
	PCMFormat  audio.PCMFormat
	SampleRate audio.SampleRate
	Channels   audio.Channel
}

func (opts RawOptions) validate() error {
	if opts.PCMFormat.Size() == 0 {
		return fmt.Errorf("the PCM format of raw input is not set")
	}
	if opts.SampleRate == 0 {
		return fmt.Errorf("the sample rate of raw input is not set")
	}
	if opts.Channels == 0 {
		return fmt.Errorf("the channel count of raw input is not set")
	}
	return nil
}

// Read decodes the file at path; raw is used only if the path is not
// recognized as a WAV or Ogg file.
func Read(ctx context.Context, path string, raw RawOptions) (_ret *File, _err error) {
	logger.Tracef(ctx, "Read(%s)", path)
	defer func() { logger.Tracef(ctx, "/Read(%s): %v", path, _err) }()

	var (
		f   *File
		err error
	)
	switch container := ContainerFromPath(path); container {
	case ContainerWAV:
		f, err = readWAV(path)
	case ContainerOgg:
		f, err = readOgg(path)
	default:
		f, err = readRaw(path, raw)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read '%s': %w", path, err)
	}
	logger.Debugf(ctx, "read '%s': %s, %d samples at %d Hz, %d channel(s)", path, f.Container, len(f.Samples), f.SampleRate, f.Channels)
	return f, nil
}

// WriteOptions select the output encoding. Zero values keep the
// container, bit depth and PCM format of the File.
type WriteOptions struct {
	Container Container
	BitDepth  int
	PCMFormat audio.PCMFormat
}

// Write encodes the samples of f into the file at path as mono audio and
// returns the size of the written file.
func Write(ctx context.Context, path string, f File, opts WriteOptions) (_ret int64, _err error) {
	logger.Tracef(ctx, "Write(%s)", path)
	defer func() { logger.Tracef(ctx, "/Write(%s): %v", path, _err) }()

	if f.SampleRate == 0 {
		return 0, fmt.Errorf("the sample rate is not set")
	}
	container := opts.Container
	if container == ContainerUndefined {
		container = ContainerFromPath(path)
	}

	switch container {
	case ContainerWAV:
		bitDepth := opts.BitDepth
		if bitDepth == 0 {
			bitDepth = f.BitDepth
		}
		if bitDepth == 0 {
			bitDepth = 16
		}
		return writeWAV(path, f, bitDepth)
	case ContainerRaw:
		format := opts.PCMFormat
		if format == audio.PCMFormatUndefined {
			format = f.PCMFormat
		}
		if format == audio.PCMFormatUndefined {
			format = audio.PCMFormatFloat32LE
		}
		return writeRaw(path, f, format)
	case ContainerOgg:
		return 0, fmt.Errorf("encoding into Ogg Vorbis is not supported")
	default:
		return 0, fmt.Errorf("unknown container '%s'", container)
	}
}

func downmix(dst []float64, interleaved []float32, channels int) {
	for idx := range dst {
		var sum float64
		for ch := 0; ch < channels; ch++ {
			sum += float64(interleaved[idx*channels+ch])
		}
		dst[idx] = sum / float64(channels)
	}
}
