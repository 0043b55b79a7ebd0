package d2d1

import ole "github.com/go-ole/go-ole"

// Built-in effect CLSIDs.
var (
	CLSIDExposure     = ole.NewGUID("{B56C8CFA-F634-41EE-BEE0-FFA617106004}")
	CLSIDSaturation   = ole.NewGUID("{5CB2D9CF-327D-459F-A0CE-40C0B2086BF7}")
	CLSIDHueRotation  = ole.NewGUID("{0F4458EC-4B32-491B-9E85-BD73F44D3EB6}")
	CLSIDGaussianBlur = ole.NewGUID("{1FEB6D69-2FE6-4AC9-8C58-1D7F93E7A6A5}")
	CLSIDOpacity      = ole.NewGUID("{811D79A4-DE28-4454-8094-C64685F8BD4C}")
)

// Property indices of the built-in effects.
const (
	ExposurePropValue = 0

	SaturationPropSaturation = 0

	HueRotationPropAngle = 0

	OpacityPropOpacity = 0

	GaussianBlurPropStandardDeviation = 0
	GaussianBlurPropOptimization      = 1
	GaussianBlurPropBorderMode        = 2
)

// BlurOptimization is D2D1_GAUSSIANBLUR_OPTIMIZATION.
type BlurOptimization uint32

const (
	BlurOptimizationSpeed    BlurOptimization = 0
	BlurOptimizationBalanced BlurOptimization = 1
	BlurOptimizationQuality  BlurOptimization = 2
)

// BorderMode is D2D1_BORDER_MODE.
type BorderMode uint32

const (
	BorderModeSoft BorderMode = 0
	BorderModeHard BorderMode = 1
)

// Exposure adjusts exposure in stops, from -2 to 2.
type Exposure struct{ *Effect }

// NewExposure creates an exposure effect on ctx.
func NewExposure(ctx *DeviceContext) (*Exposure, error) {
	e, err := ctx.CreateEffect(CLSIDExposure)
	if err != nil {
		return nil, err
	}
	return &Exposure{e}, nil
}

// Value returns the exposure value.
func (x *Exposure) Value() (float32, error) { return x.Float(ExposurePropValue) }

// SetValue sets the exposure value.
func (x *Exposure) SetValue(v float32) error { return x.SetFloat(ExposurePropValue, v) }

// Saturation scales color saturation, from 0 (grayscale) to 1.
type Saturation struct{ *Effect }

// NewSaturation creates a saturation effect on ctx.
func NewSaturation(ctx *DeviceContext) (*Saturation, error) {
	e, err := ctx.CreateEffect(CLSIDSaturation)
	if err != nil {
		return nil, err
	}
	return &Saturation{e}, nil
}

// Saturation returns the saturation.
func (x *Saturation) Saturation() (float32, error) { return x.Float(SaturationPropSaturation) }

// SetSaturation sets the saturation.
func (x *Saturation) SetSaturation(v float32) error { return x.SetFloat(SaturationPropSaturation, v) }

// HueRotation rotates hue by an angle in degrees.
type HueRotation struct{ *Effect }

// NewHueRotation creates a hue rotation effect on ctx.
func NewHueRotation(ctx *DeviceContext) (*HueRotation, error) {
	e, err := ctx.CreateEffect(CLSIDHueRotation)
	if err != nil {
		return nil, err
	}
	return &HueRotation{e}, nil
}

// Angle returns the rotation angle in degrees.
func (x *HueRotation) Angle() (float32, error) { return x.Float(HueRotationPropAngle) }

// SetAngle sets the rotation angle in degrees.
func (x *HueRotation) SetAngle(deg float32) error { return x.SetFloat(HueRotationPropAngle, deg) }

// Opacity multiplies alpha by a constant.
type Opacity struct{ *Effect }

// NewOpacity creates an opacity effect on ctx.
func NewOpacity(ctx *DeviceContext) (*Opacity, error) {
	e, err := ctx.CreateEffect(CLSIDOpacity)
	if err != nil {
		return nil, err
	}
	return &Opacity{e}, nil
}

// Opacity returns the alpha multiplier.
func (x *Opacity) Opacity() (float32, error) { return x.Float(OpacityPropOpacity) }

// SetOpacity sets the alpha multiplier.
func (x *Opacity) SetOpacity(v float32) error { return x.SetFloat(OpacityPropOpacity, v) }

// GaussianBlur blurs its input.
type GaussianBlur struct{ *Effect }

// NewGaussianBlur creates a Gaussian blur effect on ctx.
func NewGaussianBlur(ctx *DeviceContext) (*GaussianBlur, error) {
	e, err := ctx.CreateEffect(CLSIDGaussianBlur)
	if err != nil {
		return nil, err
	}
	return &GaussianBlur{e}, nil
}

// StandardDeviation returns the blur radius in DIPs.
func (x *GaussianBlur) StandardDeviation() (float32, error) {
	return x.Float(GaussianBlurPropStandardDeviation)
}

// SetStandardDeviation sets the blur radius in DIPs.
func (x *GaussianBlur) SetStandardDeviation(v float32) error {
	return x.SetFloat(GaussianBlurPropStandardDeviation, v)
}

// Optimization returns the speed/quality trade-off.
func (x *GaussianBlur) Optimization() (BlurOptimization, error) {
	v, err := x.Enum(GaussianBlurPropOptimization)
	return BlurOptimization(v), err
}

// SetOptimization sets the speed/quality trade-off.
func (x *GaussianBlur) SetOptimization(o BlurOptimization) error {
	return x.SetEnum(GaussianBlurPropOptimization, uint32(o))
}

// BorderMode returns how the image edges are treated.
func (x *GaussianBlur) BorderMode() (BorderMode, error) {
	v, err := x.Enum(GaussianBlurPropBorderMode)
	return BorderMode(v), err
}

// SetBorderMode sets how the image edges are treated.
func (x *GaussianBlur) SetBorderMode(m BorderMode) error {
	return x.SetEnum(GaussianBlurPropBorderMode, uint32(m))
}
