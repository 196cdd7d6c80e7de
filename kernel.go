package pixelpipe

type kernel [3][3]uint32

// gaussian is the 3x3 binomial approximation of a Gaussian. Its weights sum to 16.
var gaussian = kernel{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

// kernelShift divides the weighted sum by the kernel weight total.
const kernelShift = 4

// convolve computes the weighted channel sums of the window and returns the
// truncated average repacked as a pixel. It holds no state of its own.
func convolve(w *window) Pixel {
	var sumR, sumG, sumB uint32

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			px := w[row][col]
			k := gaussian[row][col]
			sumR += uint32(px.R()) * k
			sumG += uint32(px.G()) * k
			sumB += uint32(px.B()) * k
		}
	}
	return Pack(uint8(sumR>>kernelShift), uint8(sumG>>kernelShift), uint8(sumB>>kernelShift))
}
