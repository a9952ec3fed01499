// ABOUTME: Simple linear resampler for converting audio sample rates
// ABOUTME: Converts interleaved float32 audio using linear interpolation
package resample

// Resampler performs linear interpolation to convert between sample
// rates. It carries the fractional read position and the last input
// frame across calls, so chunked input produces a continuous output.
//
// Position model: the carried frame sits at position 0 and input frame
// i of the current call sits at position i+1. Output sample k of a call
// reads position p, interpolating between the two surrounding frames;
// p advances by inputRate/outputRate per output frame.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	position   float64
	prev       []float32
	hasPrev    bool
}

// New creates a resampler from inputRate to outputRate.
func New(inputRate, outputRate, channels int) *Resampler {
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      float64(inputRate) / float64(outputRate),
		prev:       make([]float32, channels),
	}
}

// Resample converts input frames to the output rate, writing at most
// len(output)/channels frames and returning the number of output
// samples produced. Size input with InputSamplesFor so the call stops
// on input exhaustion; input beyond the stop point is dropped.
func (r *Resampler) Resample(input, output []float32) int {
	inputFrames := len(input) / r.channels
	if inputFrames == 0 {
		return 0
	}

	if !r.hasPrev {
		copy(r.prev, input[:r.channels])
		r.hasPrev = true
		r.position = 0
	}

	outputFrames := len(output) / r.channels
	outIdx := 0

	for outIdx < outputFrames {
		// b is the input frame at or after the read position
		ip := int(r.position)
		if ip >= inputFrames {
			break
		}
		frac := float32(r.position - float64(ip))

		for ch := 0; ch < r.channels; ch++ {
			var a float32
			if ip == 0 {
				a = r.prev[ch]
			} else {
				a = input[(ip-1)*r.channels+ch]
			}
			b := input[ip*r.channels+ch]
			output[outIdx*r.channels+ch] = a + frac*(b-a)
		}

		outIdx++
		r.position += r.ratio
	}

	// Carry the last input frame and rebase the position onto it
	copy(r.prev, input[(inputFrames-1)*r.channels:])
	r.position -= float64(inputFrames)
	if r.position < 0 {
		r.position = 0
	}

	return outIdx * r.channels
}

// Reset clears the carried position and anchor frame.
func (r *Resampler) Reset() {
	r.position = 0
	r.hasPrev = false
	for i := range r.prev {
		r.prev[i] = 0
	}
}

// OutputSamplesFor calculates how many output samples the given input
// samples will produce.
func (r *Resampler) OutputSamplesFor(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}

// InputSamplesFor calculates how many input samples to feed for the
// given output budget, accounting for the carried read position. The
// result is rounded down so Resample runs out of input no later than it
// runs out of output space and never drops frames.
func (r *Resampler) InputSamplesFor(outputSamples int) int {
	outputFrames := outputSamples / r.channels
	inputFrames := int(r.position + float64(outputFrames)*r.ratio)
	if inputFrames < 1 {
		inputFrames = 1
	}
	return inputFrames * r.channels
}
