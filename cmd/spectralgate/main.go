package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/observability"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
	"github.com/xaionaro-go/spectralgate/pkg/audiofile"
	"github.com/xaionaro-go/spectralgate/pkg/spectralgate"
	"github.com/xaionaro-go/spectralgate/pkg/spectrogramplot"
)

func main() {
	loggerLevel := logger.LevelInfo
	pflag.Var(&loggerLevel, "log-level", "Log level")
	configPath := pflag.String("config", "", "a YAML file with the denoiser configuration; flags override it")
	frameLen := pflag.Int("frame-len", spectralgate.DefaultFrameLen, "STFT frame length in samples")
	hop := pflag.Int("hop", spectralgate.DefaultHop, "STFT hop in samples")
	noCenter := pflag.Bool("no-center", false, "do not pad the signal by half a frame on both sides")
	noisePercentile := pflag.Float64("noise-percentile", spectralgate.DefaultNoisePercentile, "percentile of a bin's magnitudes taken as its noise floor")
	floorMarginDB := pflag.Float64("floor-margin-db", spectralgate.DefaultFloorMarginDB, "headroom above the noise floor, in dB")
	maskPower := pflag.Float64("mask-power", spectralgate.DefaultMaskPower, "exponent of the gain curve")
	smoothingAlpha := pflag.Float64("smoothing-alpha", spectralgate.DefaultSmoothingAlpha, "weight of the previous frame in the gain smoothing")
	transformer := spectralgate.TransformerGonum
	pflag.Var(&transformer, "transformer", "FFT implementation: gonum, godsp or fourier")
	workers := pflag.Int("workers", 0, "amount of parallel workers, 0 means GOMAXPROCS")
	var rawFormat audio.PCMFormat = audio.PCMFormatFloat32LE
	pflag.Var(&rawFormat, "input-format", "sample format of raw PCM input")
	sampleRate := pflag.Uint32("sample-rate", 48000, "sample rate of raw PCM input")
	channels := pflag.Uint32("channels", 1, "channel count of raw PCM input")
	var outputFormat audio.PCMFormat
	pflag.Var(&outputFormat, "output-format", "sample format of raw PCM output (default: same as the input)")
	outputBitDepth := pflag.Int("output-bit-depth", 0, "bit depth of WAV output (default: same as the input, or 16)")
	spectrogramPrefix := pflag.String("spectrogram-png", "", "if set, the original and the denoised spectrograms are saved to <prefix>original.png and <prefix>denoised.png")
	netPprofAddr := pflag.String("net-pprof-listen-addr", "", "an address to listen for incoming net/pprof connections")
	pflag.Parse()

	if pflag.NArg() != 2 {
		panic(fmt.Errorf("expected exactly two arguments: <input-file> <output-file>"))
	}

	l := logrus.Default().WithLevel(loggerLevel)
	ctx := logger.CtxWithLogger(context.Background(), l)
	logger.Default = func() logger.Logger {
		return l
	}
	defer belt.Flush(ctx)

	if *netPprofAddr != "" {
		observability.Go(ctx, func() { l.Error(http.ListenAndServe(*netPprofAddr, nil)) })
	}

	cfg := spectralgate.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		assertNoError(err)
		cfg, err = spectralgate.ParseConfigYAML(data)
		assertNoError(err)
	}
	pflag.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "frame-len":
			cfg.FrameLen = *frameLen
		case "hop":
			cfg.Hop = *hop
		case "no-center":
			cfg.Center = !*noCenter
		case "noise-percentile":
			cfg.NoisePercentile = *noisePercentile
		case "floor-margin-db":
			cfg.FloorMarginDB = *floorMarginDB
		case "mask-power":
			cfg.MaskPower = *maskPower
		case "smoothing-alpha":
			cfg.SmoothingAlpha = *smoothingAlpha
		case "transformer":
			cfg.Transformer = transformer
		case "workers":
			cfg.Workers = *workers
		}
	})
	logger.Debugf(ctx, "config: %#+v", cfg)

	denoiser, err := spectralgate.New(cfg)
	assertNoError(err)

	input, err := audiofile.Read(ctx, pflag.Arg(0), audiofile.RawOptions{
		PCMFormat:  rawFormat,
		SampleRate: audio.SampleRate(*sampleRate),
		Channels:   audio.Channel(*channels),
	})
	assertNoError(err)

	signal := spectralgate.Signal{
		Samples:    input.Samples,
		SampleRate: input.SampleRate,
	}
	logger.Infof(ctx, "loaded '%s': %v, %d Hz, %d channel(s) downmixed to mono", pflag.Arg(0), signal.Duration(), signal.SampleRate, input.Channels)

	result, err := denoiser.Process(ctx, signal)
	assertNoError(err)
	logger.Infof(ctx, "STFT: %d frequency bins × %d frames, mean gain %.3f", result.Spectrogram.Bins, result.Spectrogram.Frames, result.Mask.Mean())

	output := *input
	output.Samples = result.Output.Samples
	size, err := audiofile.Write(ctx, pflag.Arg(1), output, audiofile.WriteOptions{
		BitDepth:  *outputBitDepth,
		PCMFormat: outputFormat,
	})
	assertNoError(err)
	logger.Infof(ctx, "written '%s': %d bytes", pflag.Arg(1), size)

	if *spectrogramPrefix != "" {
		paths, err := spectrogramplot.SaveDiagnostics(ctx, *spectrogramPrefix, result.Diagnostics())
		assertNoError(err)
		logger.Infof(ctx, "spectrograms: %v", paths)
	}
}

func assertNoError(err error) {
	if err != nil {
		panic(err)
	}
}
