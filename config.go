package prism

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/prism-engine/prism/rppg"
)

// QualityGateConfig groups the per-frame ROI admission thresholds used by
// the quality gate (§4.1).
type QualityGateConfig struct {
	Enabled             bool    `yaml:"enabled"`
	MaxMotionScore      float64 `yaml:"max_motion_score"`
	MinBlurVarLaplacian float64 `yaml:"min_blur_var_laplacian"`
	MaxExposureClipPct  float64 `yaml:"max_exposure_clip_pct"`
	MinROISize          int     `yaml:"min_roi_size"`
}

// TemporalConfig groups the latency-probe and cross-correlation-probe
// thresholds used by the temporal responder (§4.10).
type TemporalConfig struct {
	EnableXCorr     bool    `yaml:"enable_xcorr"`
	XCorrMinCorr    float64 `yaml:"xcorr_min_corr"`
	XCorrMinLagMs   float64 `yaml:"xcorr_min_lag_ms"`
	XCorrMaxLagMs   float64 `yaml:"xcorr_max_lag_ms"`
	DelayMinMs      float64 `yaml:"delay_min_ms"`
	DelayMaxMs      float64 `yaml:"delay_max_ms"`
}

// FusionWeights groups the six weighted-sum contributions used by the
// fusion scorer (§4.12).
type FusionWeights struct {
	PhysicsSSS float64 `yaml:"physics_sss"`
	Chroma     float64 `yaml:"chroma"`
	RPPG       float64 `yaml:"rppg"`
	HRV        float64 `yaml:"hrv"`
	Temporal   float64 `yaml:"temporal"`
	Moire      float64 `yaml:"moire"`
}

// Config is the engine's immutable-after-construction configuration (§3).
type Config struct {
	FPS                  int             `yaml:"fps"`
	BufferSize           int             `yaml:"buffer_size"`
	RPPGMethod           rppg.Method     `yaml:"rppg_method"`
	RPPGMinWindowSeconds float64         `yaml:"rppg_min_window_seconds"`
	QualityGate          QualityGateConfig `yaml:"quality_gate"`
	Temporal             TemporalConfig  `yaml:"temporal"`
	Weights              FusionWeights   `yaml:"weights"`

	MinBPM            float64 `yaml:"min_bpm"`
	MaxBPM            float64 `yaml:"max_bpm"`
	MinSignalQuality  float64 `yaml:"min_signal_quality"`

	SSSRatioThreshold float64 `yaml:"sss_ratio_threshold"`
	ChromaSensitivity float64 `yaml:"chroma_sensitivity"`

	HRVMinRMSSD         float64 `yaml:"hrv_min_rmssd"`
	HRVEntropyThreshold float64 `yaml:"hrv_entropy_threshold"`

	MoireThreshold float64 `yaml:"moire_threshold"`

	BPMStabilityThreshold float64 `yaml:"bpm_stability_threshold"`
	MinSignalVariance     float64 `yaml:"min_signal_variance"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		FPS:                  30,
		BufferSize:           90,
		RPPGMethod:           rppg.GREEN,
		RPPGMinWindowSeconds: 3.0,
		QualityGate: QualityGateConfig{
			Enabled:             true,
			MaxMotionScore:      15.0,
			MinBlurVarLaplacian: 15.0,
			MaxExposureClipPct:  0.15,
			MinROISize:          20,
		},
		Temporal: TemporalConfig{
			EnableXCorr:   true,
			XCorrMinCorr:  0.3,
			XCorrMinLagMs: 50,
			XCorrMaxLagMs: 800,
			DelayMinMs:    50,
			DelayMaxMs:    800,
		},
		Weights: FusionWeights{
			PhysicsSSS: 20,
			Chroma:     10,
			RPPG:       20,
			HRV:        10,
			Temporal:   15,
			Moire:      10,
		},
		MinBPM:                45,
		MaxBPM:                180,
		MinSignalQuality:      0.2,
		SSSRatioThreshold:     1.15,
		ChromaSensitivity:     1.15,
		HRVMinRMSSD:           15,
		HRVEntropyThreshold:  1.2,
		MoireThreshold:        0.35,
		BPMStabilityThreshold: 8,
		MinSignalVariance:     0.4,
	}
}

// Validate checks the documented domain of every field that would make the
// engine misbehave if out of range.
func (c Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("prism: fps must be positive, got %d", c.FPS)
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("prism: buffer_size must be positive, got %d", c.BufferSize)
	}
	switch c.RPPGMethod {
	case rppg.GREEN, rppg.CHROM, rppg.POS:
	default:
		return fmt.Errorf("prism: unrecognized rppg_method %q", c.RPPGMethod)
	}
	if c.MinBPM <= 0 || c.MaxBPM <= c.MinBPM {
		return fmt.Errorf("prism: invalid bpm range [%v, %v]", c.MinBPM, c.MaxBPM)
	}
	return nil
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig,
// using a strict decoder (unknown keys are a load error, not silently
// ignored), the same discipline the teacher's LoadPolicyBundle uses for
// its own YAML config surface.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("prism: reading config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("prism: parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
