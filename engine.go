package prism

import (
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/prism-engine/prism/fusion"
	"github.com/prism-engine/prism/internal/dsp"
	"github.com/prism-engine/prism/internal/imgproc"
	"github.com/prism-engine/prism/rppg"
	"github.com/prism-engine/prism/spoof"
	"github.com/prism-engine/prism/temporal"
)

const (
	temporalBufCapacity     = 120
	luminanceBufCapacity    = 60
	colorChangeBufCapacity  = 10
)

// Engine is the single-threaded, cooperative liveness-detection façade
// (C14). One Engine serves one session; callers wanting parallel sessions
// allocate one Engine per session.
type Engine struct {
	cfg Config
	fps float64

	greenBuf       *ring[float64]
	rgbBuf         *ring[RGBSample]
	temporalBuf    *ring[TemporalSample]
	luminanceBuf   *ring[LuminanceSample]
	colorChangeBuf *ring[ColorChangeSample]

	hr *rppg.Estimator

	prevROIGray         imgproc.Gray
	lastScreenColor     string
	haveLastScreenColor bool
	lastColorChange     *temporal.ColorChange
	lastFaceImg         Frame
}

// NewEngine constructs an Engine for the given configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, fps: float64(cfg.FPS)}
	e.allocateBuffers()
	return e, nil
}

func (e *Engine) allocateBuffers() {
	e.greenBuf = newRing[float64](e.cfg.BufferSize)
	e.rgbBuf = newRing[RGBSample](e.cfg.BufferSize)
	e.temporalBuf = newRing[TemporalSample](temporalBufCapacity)
	e.luminanceBuf = newRing[LuminanceSample](luminanceBufCapacity)
	e.colorChangeBuf = newRing[ColorChangeSample](colorChangeBufCapacity)
	e.hr = rppg.NewEstimator(e.fps, e.cfg.MinBPM, e.cfg.MaxBPM, e.cfg.MinSignalQuality)
}

// Reset clears all buffers and timing state, keeping the configuration.
func (e *Engine) Reset() {
	e.allocateBuffers()
	e.prevROIGray = imgproc.Gray{}
	e.lastScreenColor = ""
	e.haveLastScreenColor = false
	e.lastColorChange = nil
	e.lastFaceImg = Frame{}
	logrus.Debug("prism: engine reset, buffers and timing state cleared")
}

// ProcessFrame runs the full per-frame pipeline (§4.13) and returns an
// independent LivenessResult. timestampMs must be non-decreasing across
// calls within a session.
func (e *Engine) ProcessFrame(foreheadROI, faceImg Frame, screenColor string, timestampMs float64) LivenessResult {
	e.lastFaceImg = faceImg
	normalizedColor := normalizeScreenColor(screenColor)

	gateResult, newGray := evaluateQualityGate(foreheadROI, e.prevROIGray, e.cfg.QualityGate)
	e.prevROIGray = newGray
	if !gateResult.Passed && gateResult.Reason != "" {
		logrus.Debugf("prism: quality gate rejected frame at t=%.0fms: %s", timestampMs, gateResult.Reason)
	}

	if gateResult.Passed {
		meanB, meanG, meanR := imgproc.ChannelMeans(foreheadROI.H, foreheadROI.W, foreheadROI.Pix)
		e.greenBuf.push(meanG)
		e.rgbBuf.push(RGBSample{R: meanR, G: meanG, B: meanB})
	}

	e.updateTemporalState(foreheadROI, faceImg, normalizedColor, timestampMs)

	details := map[string]any{
		"rppg_method":          string(e.cfg.RPPGMethod),
		"quality_gate":         gateResult.Passed,
		"quality_gate_reason":  gateResult.Reason,
	}

	var (
		hrRes  rppg.HRResult
		hrvRes rppg.HRVResult
	)
	if gateResult.Passed {
		if bvp, ok := e.windowBVP(); ok {
			hrRes = e.hr.Estimate(bvp)
			if hrRes.FilteredBVP != nil {
				hrvRes = rppg.ExtractHRV(hrRes.FilteredBVP, e.fps, e.cfg.HRVMinRMSSD, e.cfg.HRVEntropyThreshold)
			}
		}
	}
	details["bpm"] = int(hrRes.SmoothedBPM)
	details["bpm_signal_quality"] = hrRes.SignalQuality
	details["hrv_rmssd"] = hrvRes.RMSSD
	details["hrv_entropy"] = hrvRes.Entropy

	sssRes := spoof.AnalyzeSSS(faceImg.H, faceImg.W, faceImg.Pix, e.cfg.SSSRatioThreshold)
	moireRes := spoof.AnalyzeMoire(faceImg.H, faceImg.W, faceImg.Pix, e.cfg.MoireThreshold)
	textureRes := spoof.AnalyzeTexture(faceImg.H, faceImg.W, faceImg.Pix)
	flickerRes := spoof.AnalyzeFlicker(e.greenBuf.items(), e.fps)
	staticRes := spoof.AnalyzeStatic(e.greenBuf.items(), e.cfg.MinSignalVariance)

	meanB, meanG, meanR := imgproc.ChannelMeans(faceImg.H, faceImg.W, faceImg.Pix)
	chromaRes := temporal.CheckChroma(meanB, meanG, meanR, faceImg.Empty(), normalizedColor, e.cfg.ChromaSensitivity)

	latency := temporal.DetectLatency(e.luminanceSamples(), e.lastColorChange, e.cfg.Temporal.DelayMinMs, e.cfg.Temporal.DelayMaxMs)
	var xcorr temporal.XCorrResult
	if e.cfg.Temporal.EnableXCorr {
		xcorr = temporal.DetectXCorr(e.temporalSamples(), e.fps, e.cfg.Temporal.XCorrMinLagMs, e.cfg.Temporal.XCorrMaxLagMs, e.cfg.Temporal.XCorrMinCorr)
	}

	details["moire_score"] = moireRes.Score
	details["signal_variance"] = staticRes.VariancePct
	details["texture_uniformity"] = textureRes.Score
	details["screen_flicker_ratio"] = flickerRes.Ratio
	details["temporal_delay_ms"] = latency.DelayMs
	details["temporal_biological"] = latency.IsBiological
	details["temporal_xcorr_delay_ms"] = xcorr.DelayMs

	fusionIn := fusion.Inputs{
		RPPGValid:                hrRes.Valid,
		SignalQuality:            hrRes.SignalQuality,
		RGBBufLen:                e.rgbBuf.len(),
		HRVValid:                 hrvRes.Valid,
		SSSPassed:                sssRes.Passed,
		SSSRatio:                 sssRes.Ratio,
		SSSThreshold:             e.cfg.SSSRatioThreshold,
		ChromaPassed:             chromaRes.Passed,
		TemporalResponseDetected: latency.ResponseDetected,
		TemporalIsBiological:     latency.IsBiological,
		XCorrPassed:              xcorr.Passed,
		XCorrStrength:            xcorr.Strength,
		MoireDetected:            moireRes.Detected,
		RawBPMHistory:            e.hr.RawBPMHistory(),
		BPMStabilityThreshold:    e.cfg.BPMStabilityThreshold,
		LightingUnstable:         staticRes.LightingUnstable,
		IsStatic:                 staticRes.IsStatic,
		Alive:                    staticRes.Alive,
		GreenBufLen:              e.greenBuf.len(),
		HasFaceImage:             !faceImg.Empty(),
		ScreenTextureDetected:    textureRes.ScreenLike,
		ScreenFlickerDetected:    flickerRes.Detected,
	}
	weights := fusion.Weights(e.cfg.Weights)
	if faceImg.Empty() {
		// The moiré analyzer has nothing to inspect, so its not-detected
		// default earns no bonus.
		weights.Moire = 0
	}
	fusionRes := fusion.Score(fusionIn, weights)
	if fusionRes.ForcedFalseReason != "" {
		logrus.Warnf("prism: forced non-human at t=%.0fms: %s", timestampMs, fusionRes.ForcedFalseReason)
	}

	for k, v := range fusionRes.Diagnostics {
		details[k] = v
	}

	return LivenessResult{
		IsHuman:       fusionRes.IsHuman,
		Confidence:    roundTo(fusionRes.Confidence, 1),
		BPM:           int(hrRes.SmoothedBPM),
		HRVScore:      hrvRes.Entropy,
		SignalQuality: roundTo(hrRes.SignalQuality, 3),
		Details:       details,
	}
}

// roundTo rounds v to n decimal places, matching the one-decimal
// confidence and three-decimal signal-quality contract in §6.
func roundTo(v float64, n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= 10
	}
	return math.Round(v*p) / p
}

// windowBVP checks the §4.3 preconditions and, if met, extracts the BVP
// window for the configured method.
func (e *Engine) windowBVP() ([]float64, bool) {
	minSamples := e.cfg.RPPGMinWindowSeconds * e.fps

	if e.cfg.RPPGMethod == rppg.GREEN {
		if float64(e.greenBuf.len()) < float64(e.cfg.BufferSize) || float64(e.greenBuf.len()) < minSamples {
			return nil, false
		}
		bvp, err := rppg.ExtractBVP(rppg.GREEN, nil, e.greenBuf.items(), nil)
		return bvp, err == nil
	}

	if float64(e.rgbBuf.len()) < float64(e.cfg.BufferSize) || float64(e.rgbBuf.len()) < minSamples {
		return nil, false
	}
	samples := e.rgbBuf.items()
	r := make([]float64, len(samples))
	g := make([]float64, len(samples))
	b := make([]float64, len(samples))
	for i, s := range samples {
		r[i], g[i], b[i] = s.R, s.G, s.B
	}
	bvp, err := rppg.ExtractBVP(e.cfg.RPPGMethod, r, g, b)
	return bvp, err == nil
}

// updateTemporalState advances the temporal/luminance buffers and the
// color-change timeline. The buffers advance on every frame where either
// image is non-empty, regardless of the quality gate; the color-change
// timeline advances on every frame.
func (e *Engine) updateTemporalState(foreheadROI, faceImg Frame, screenColor string, timestampMs float64) {
	if foreheadROI.Empty() && faceImg.Empty() {
		e.advanceColorChange(screenColor, timestampMs)
		return
	}
	luminance := regionLuminance(foreheadROI, faceImg)
	r, g, b := temporal.StimulusRGB(screenColor)
	stimVal := r + g + b

	e.temporalBuf.push(TemporalSample{TimestampMs: timestampMs, Luminance: luminance, StimulusVal: stimVal})
	e.luminanceBuf.push(LuminanceSample{TimestampMs: timestampMs, Luminance: luminance, StimulusLabel: screenColor})

	e.advanceColorChange(screenColor, timestampMs)
}

func (e *Engine) advanceColorChange(screenColor string, timestampMs float64) {
	if e.haveLastScreenColor && screenColor != e.lastScreenColor {
		e.colorChangeBuf.push(ColorChangeSample{Label: screenColor, TimestampMs: timestampMs})
		change := temporal.ColorChange{Label: screenColor, TimestampMs: timestampMs}
		e.lastColorChange = &change
	}
	e.lastScreenColor = screenColor
	e.haveLastScreenColor = true
}

// regionLuminance computes the mean grayscale intensity of whichever image
// is available, preferring the forehead ROI (the region whose reflectance
// the stimulus actually drives).
func regionLuminance(foreheadROI, faceImg Frame) float64 {
	if !foreheadROI.Empty() {
		gray := imgproc.ToGray(foreheadROI.H, foreheadROI.W, foreheadROI.Pix)
		return dsp.Mean(gray.Vals)
	}
	if !faceImg.Empty() {
		gray := imgproc.ToGray(faceImg.H, faceImg.W, faceImg.Pix)
		return dsp.Mean(gray.Vals)
	}
	return 0
}

func (e *Engine) luminanceSamples() []temporal.LuminanceSample {
	items := e.luminanceBuf.items()
	out := make([]temporal.LuminanceSample, len(items))
	for i, s := range items {
		out[i] = temporal.LuminanceSample{TimestampMs: s.TimestampMs, Luminance: s.Luminance, StimulusLabel: s.StimulusLabel}
	}
	return out
}

func (e *Engine) temporalSamples() []temporal.TemporalSample {
	items := e.temporalBuf.items()
	out := make([]temporal.TemporalSample, len(items))
	for i, s := range items {
		out[i] = temporal.TemporalSample{TimestampMs: s.TimestampMs, Luminance: s.Luminance, StimulusVal: s.StimulusVal}
	}
	return out
}

func normalizeScreenColor(color string) string {
	switch strings.ToUpper(strings.TrimSpace(color)) {
	case "RED":
		return "RED"
	case "GREEN":
		return "GREEN"
	case "BLUE":
		return "BLUE"
	default:
		return "WHITE"
	}
}
