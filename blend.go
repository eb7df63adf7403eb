package gfx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Blend errors.
var (
	// ErrInvalidBlendFactor is returned when a blend factor is outside
	// the defined range.
	ErrInvalidBlendFactor = errors.New("gfx: invalid blend factor")

	// ErrInvalidBlendEquation is returned when a blend equation is
	// outside the defined range.
	ErrInvalidBlendEquation = errors.New("gfx: invalid blend equation")
)

// BlendFactor specifies how a source or destination color channel is
// weighted during blending.
type BlendFactor int

const (
	// BlendZero weights the channel with (0, 0, 0, 0).
	BlendZero BlendFactor = iota
	// BlendOne weights the channel with (1, 1, 1, 1).
	BlendOne
	// BlendSrcColor weights the channel with the source color.
	BlendSrcColor
	// BlendOneMinusSrcColor weights the channel with one minus the source color.
	BlendOneMinusSrcColor
	// BlendDstColor weights the channel with the destination color.
	BlendDstColor
	// BlendOneMinusDstColor weights the channel with one minus the destination color.
	BlendOneMinusDstColor
	// BlendSrcAlpha weights the channel with the source alpha.
	BlendSrcAlpha
	// BlendOneMinusSrcAlpha weights the channel with one minus the source alpha.
	BlendOneMinusSrcAlpha
	// BlendDstAlpha weights the channel with the destination alpha.
	BlendDstAlpha
	// BlendOneMinusDstAlpha weights the channel with one minus the destination alpha.
	BlendOneMinusDstAlpha
)

// BlendEquation specifies how weighted source and destination values are
// combined.
type BlendEquation int

const (
	// BlendAddEq computes src + dst.
	BlendAddEq BlendEquation = iota
	// BlendSubtractEq computes src - dst.
	BlendSubtractEq
	// BlendReverseSubtractEq computes dst - src.
	BlendReverseSubtractEq
	// BlendMinEq computes min(src, dst); the factors are ignored.
	BlendMinEq
	// BlendMaxEq computes max(src, dst); the factors are ignored.
	BlendMaxEq
)

// BlendMode describes how incoming fragments are combined with the
// framebuffer: four factors and two equations, split between the color
// and alpha channels. BlendMode is a value type; two modes are equal iff
// all six fields are equal.
type BlendMode struct {
	ColorSrcFactor BlendFactor
	ColorDstFactor BlendFactor
	ColorEquation  BlendEquation
	AlphaSrcFactor BlendFactor
	AlphaDstFactor BlendFactor
	AlphaEquation  BlendEquation
}

// NewBlendMode creates a blend mode applying the given factors and
// equation to both the color and alpha channels.
func NewBlendMode(src, dst BlendFactor, eq BlendEquation) BlendMode {
	return BlendMode{
		ColorSrcFactor: src,
		ColorDstFactor: dst,
		ColorEquation:  eq,
		AlphaSrcFactor: src,
		AlphaDstFactor: dst,
		AlphaEquation:  eq,
	}
}

// Commonly used blend modes.
var (
	// BlendAlpha blends source and destination according to the source
	// alpha. This is the default.
	BlendAlpha = BlendMode{
		ColorSrcFactor: BlendSrcAlpha, ColorDstFactor: BlendOneMinusSrcAlpha, ColorEquation: BlendAddEq,
		AlphaSrcFactor: BlendOne, AlphaDstFactor: BlendOneMinusSrcAlpha, AlphaEquation: BlendAddEq,
	}

	// BlendAdd adds source onto destination.
	BlendAdd = BlendMode{
		ColorSrcFactor: BlendSrcAlpha, ColorDstFactor: BlendOne, ColorEquation: BlendAddEq,
		AlphaSrcFactor: BlendOne, AlphaDstFactor: BlendOne, AlphaEquation: BlendAddEq,
	}

	// BlendMultiply multiplies source with destination.
	BlendMultiply = NewBlendMode(BlendDstColor, BlendZero, BlendAddEq)

	// BlendMin keeps the minimum of source and destination.
	BlendMin = NewBlendMode(BlendOne, BlendOne, BlendMinEq)

	// BlendMax keeps the maximum of source and destination.
	BlendMax = NewBlendMode(BlendOne, BlendOne, BlendMaxEq)

	// BlendNone overwrites destination with source.
	BlendNone = NewBlendMode(BlendOne, BlendZero, BlendAddEq)
)

// gpuFactor maps a BlendFactor to the corresponding GPU constant.
func (f BlendFactor) gpuFactor() (gputypes.BlendFactor, error) {
	switch f {
	case BlendZero:
		return gputypes.BlendFactorZero, nil
	case BlendOne:
		return gputypes.BlendFactorOne, nil
	case BlendSrcColor:
		return gputypes.BlendFactorSrc, nil
	case BlendOneMinusSrcColor:
		return gputypes.BlendFactorOneMinusSrc, nil
	case BlendDstColor:
		return gputypes.BlendFactorDst, nil
	case BlendOneMinusDstColor:
		return gputypes.BlendFactorOneMinusDst, nil
	case BlendSrcAlpha:
		return gputypes.BlendFactorSrcAlpha, nil
	case BlendOneMinusSrcAlpha:
		return gputypes.BlendFactorOneMinusSrcAlpha, nil
	case BlendDstAlpha:
		return gputypes.BlendFactorDstAlpha, nil
	case BlendOneMinusDstAlpha:
		return gputypes.BlendFactorOneMinusDstAlpha, nil
	default:
		return gputypes.BlendFactorZero, fmt.Errorf("%w: %d", ErrInvalidBlendFactor, int(f))
	}
}

// gpuOperation maps a BlendEquation to the corresponding GPU constant.
func (e BlendEquation) gpuOperation() (gputypes.BlendOperation, error) {
	switch e {
	case BlendAddEq:
		return gputypes.BlendOperationAdd, nil
	case BlendSubtractEq:
		return gputypes.BlendOperationSubtract, nil
	case BlendReverseSubtractEq:
		return gputypes.BlendOperationReverseSubtract, nil
	case BlendMinEq:
		return gputypes.BlendOperationMin, nil
	case BlendMaxEq:
		return gputypes.BlendOperationMax, nil
	default:
		return gputypes.BlendOperationAdd, fmt.Errorf("%w: %d", ErrInvalidBlendEquation, int(e))
	}
}

// GPUState converts the blend mode to a GPU blend state. An out-of-range
// factor or equation yields an error; the returned state falls back to
// BlendAlpha in that case so callers that choose to continue render in a
// defined state.
func (b BlendMode) GPUState() (gputypes.BlendState, error) {
	var errs []error

	colorSrc, err := b.ColorSrcFactor.gpuFactor()
	errs = append(errs, err)
	colorDst, err := b.ColorDstFactor.gpuFactor()
	errs = append(errs, err)
	colorOp, err := b.ColorEquation.gpuOperation()
	errs = append(errs, err)
	alphaSrc, err := b.AlphaSrcFactor.gpuFactor()
	errs = append(errs, err)
	alphaDst, err := b.AlphaDstFactor.gpuFactor()
	errs = append(errs, err)
	alphaOp, err := b.AlphaEquation.gpuOperation()
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		Logger().Warn("invalid blend mode, falling back to BlendAlpha", "err", err)
		state, _ := BlendAlpha.GPUState()
		return state, err
	}

	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: colorSrc,
			DstFactor: colorDst,
			Operation: colorOp,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: alphaSrc,
			DstFactor: alphaDst,
			Operation: alphaOp,
		},
	}, nil
}
