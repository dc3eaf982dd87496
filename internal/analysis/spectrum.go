// Package analysis provides spectral tools for height fields: a radix-2
// FFT, power spectra, and a dominant-wavelength estimate used by the
// CLI after a run.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform of data, whose length
// must be a power of two (see Pad).
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		out := make([]complex128, n)
		for i, v := range data {
			out[i] = complex(v, 0)
		}
		return out
	}
	if n&(n-1) != 0 {
		panic("analysis: fft length must be a power of two")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fe := FFT(even)
	fo := FFT(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		out[k] = fe[k] + w*fo[k]
		out[k+n/2] = fe[k] - w*fo[k]
	}
	return out
}

// Pad zero-extends data to the next power-of-two length.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n *= 2
	}
	if n == len(data) {
		return data
	}
	padded := make([]float64, n)
	copy(padded, data)
	return padded
}

// PowerSpectrum returns |FFT|² for the positive-frequency half of a
// field, padding to a power of two as needed.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(Pad(data))
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		a := cmplx.Abs(fft[i])
		ps[i] = a * a
	}
	return ps
}

// DominantWavelength estimates the strongest spatial wavelength in a
// height field, in the same units as dx. It returns 0 for fields with
// no oscillatory content.
func DominantWavelength(h []float64, dx float64) float64 {
	ps := PowerSpectrum(h)
	if len(ps) < 2 {
		return 0
	}

	maxPower, maxIdx := 0.0, 0
	for k := 1; k < len(ps); k++ { // skip the DC bin
		if ps[k] > maxPower {
			maxPower = ps[k]
			maxIdx = k
		}
	}
	if maxIdx == 0 || maxPower == 0 {
		return 0
	}

	n := 2 * len(ps) // padded field length
	return float64(n) * dx / float64(maxIdx)
}
