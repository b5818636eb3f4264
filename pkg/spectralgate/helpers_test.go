package spectralgate

import (
	"math"
	"math/rand"
)

func whiteNoise(seed int64, n int, amplitude float64) []float64 {
	r := rand.New(rand.NewSource(seed))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = (r.Float64()*2 - 1) * amplitude
	}
	return samples
}

func sine(freq, sampleRate float64, n int, amplitude float64) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return samples
}

func rms(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

func maxAbsDiff(a, b []float64) float64 {
	var result float64
	for i := range a {
		result = math.Max(result, math.Abs(a[i]-b[i]))
	}
	return result
}

func testConfig(workers int) Config {
	cfg := DefaultConfig()
	cfg.Workers = workers
	return cfg
}
