package order

import (
	"errors"
	"fmt"

	"platetrack/internal/pkg/errs"
	"platetrack/internal/pkg/guard"
)

var (
	// ErrInvalidGeometry is returned when plate dimensions are degenerate
	// (zero or negative width/height). An order with degenerate geometry
	// can never trigger solvent consumption.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDimensionsAreNotConstructed is returned when attempting to use an
	// improperly initialized Dimensions value.
	ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
		"dimensions must be created via NewDimensions constructor")
)

const cmSquaredPerM2 = 10000.0

// Dimensions is an immutable value object describing the declared physical
// geometry of the printed plate: width and height in centimeters, plus repeat
// counts for plates that carry the same motif multiple times in each axis.
//
// Repeat counts default to 1 when not given or not positive. Width and height
// must be strictly positive.
//
// Example:
//
//	dims, err := order.NewDimensions(50, 70, 2, 1)
//	if err != nil {
//	    // Handle validation error
//	}
//	area := dims.AreaM2() // 0.7 m²
type Dimensions struct { //nolint:recvcheck //using for validation
	widthCm           float64
	heightCm          float64
	widthRepeatCount  int
	heightRepeatCount int

	guard guard.ConstructorGuard
}

// NewDimensions creates a validated Dimensions value.
//
// Parameters:
//   - widthCm, heightCm: plate size in centimeters, must be > 0
//   - widthRepeatCount, heightRepeatCount: motif repeats per axis; values <= 0 default to 1
//
// Returns an error wrapping ErrInvalidGeometry when width or height is not positive.
func NewDimensions(widthCm, heightCm float64, widthRepeatCount, heightRepeatCount int) (Dimensions, error) {
	if widthCm <= 0 || heightCm <= 0 {
		return Dimensions{}, fmt.Errorf("%w: width %v cm, height %v cm", ErrInvalidGeometry, widthCm, heightCm)
	}

	if widthRepeatCount <= 0 {
		widthRepeatCount = 1
	}
	if heightRepeatCount <= 0 {
		heightRepeatCount = 1
	}

	return Dimensions{
		widthCm:           widthCm,
		heightCm:          heightCm,
		widthRepeatCount:  widthRepeatCount,
		heightRepeatCount: heightRepeatCount,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// Validate checks if the Dimensions value was properly constructed.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// WidthCm returns the plate width in centimeters.
func (d Dimensions) WidthCm() float64 {
	return d.widthCm
}

// HeightCm returns the plate height in centimeters.
func (d Dimensions) HeightCm() float64 {
	return d.heightCm
}

// WidthRepeatCount returns the motif repeat count along the width.
func (d Dimensions) WidthRepeatCount() int {
	return d.widthRepeatCount
}

// HeightRepeatCount returns the motif repeat count along the height.
func (d Dimensions) HeightRepeatCount() int {
	return d.heightRepeatCount
}

// AreaM2 computes the total processed area in square meters:
//
//	(widthCm * widthRepeatCount) * (heightCm * heightRepeatCount) / 10000
//
// The result is symmetric under swapping width/height together with their
// repeat counts and scales linearly with each repeat count.
func (d Dimensions) AreaM2() float64 {
	width := d.widthCm * float64(d.widthRepeatCount)
	height := d.heightCm * float64(d.heightRepeatCount)
	return width * height / cmSquaredPerM2
}
