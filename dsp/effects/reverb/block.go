package reverb

import "github.com/cwbudde/algo-vecmath"

// ProcessMonoBlock processes min(len(dst), len(src)) samples. dst may alias
// src. The result is identical to calling ProcessMono per sample.
func (e *Engine) ProcessMonoBlock(dst, src []float64) {
	n := min(len(dst), len(src))
	chunk := e.plan.cfg.maxBlockSize

	for off := 0; off < n; off += chunk {
		end := min(off+chunk, n)
		e.processMonoChunk(dst[off:end], src[off:end])
	}
}

// ProcessStereoBlock processes the shortest of the four slices. Each
// output may alias its own input.
func (e *Engine) ProcessStereoBlock(dstL, dstR, srcL, srcR []float64) {
	n := min(len(dstL), len(dstR), len(srcL), len(srcR))
	chunk := e.plan.cfg.maxBlockSize

	for off := 0; off < n; off += chunk {
		end := min(off+chunk, n)
		e.processStereoChunk(dstL[off:end], dstR[off:end], srcL[off:end], srcR[off:end])
	}
}

// ProcessInPlace processes a mono buffer in place.
func (e *Engine) ProcessInPlace(buf []float64) {
	e.ProcessMonoBlock(buf, buf)
}

func (e *Engine) processMonoChunk(dst, src []float64) {
	n := len(src)
	wet, dry, mix := e.scratchWetL[:n], e.scratchDry[:n], e.scratchMix[:n]

	for i, x := range src {
		e.tick(x)
		wet[i] = (e.wetL + e.wetR) / 2
		mix[i] = e.coef[coefMix]
		dry[i] = 1 - mix[i]
	}

	vecmath.MulBlock(dst, src, dry)
	vecmath.MulBlockInPlace(wet, mix)
	vecmath.AddBlockInPlace(dst, wet)
}

func (e *Engine) processStereoChunk(dstL, dstR, srcL, srcR []float64) {
	n := len(srcL)
	wetL, wetR := e.scratchWetL[:n], e.scratchWetR[:n]
	dry, mix := e.scratchDry[:n], e.scratchMix[:n]

	for i := range n {
		e.tick((srcL[i] + srcR[i]) / 2)
		wetL[i] = e.wetL
		wetR[i] = e.wetR
		mix[i] = e.coef[coefMix]
		dry[i] = 1 - mix[i]
	}

	vecmath.MulBlock(dstL, srcL, dry)
	vecmath.MulBlock(dstR, srcR, dry)
	vecmath.MulBlockInPlace(wetL, mix)
	vecmath.MulBlockInPlace(wetR, mix)
	vecmath.AddBlockInPlace(dstL, wetL)
	vecmath.AddBlockInPlace(dstR, wetR)
}
