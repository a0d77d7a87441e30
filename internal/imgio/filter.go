package imgio

import (
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Filter names a resampling kernel from the fixed supported set.
type Filter string

const (
	FilterNearest  Filter = "nearest"
	FilterBilinear Filter = "bilinear"
	FilterBicubic  Filter = "bicubic"
	FilterLanczos  Filter = "lanczos"
)

// ParseFilter resolves a filter name, case-insensitively.
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(name))
	switch f {
	case FilterNearest, FilterBilinear, FilterBicubic, FilterLanczos:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q (want nearest, bilinear, bicubic or lanczos)", name)
}

// Resample maps the filter to its imaging kernel.
func (f Filter) Resample() imaging.ResampleFilter {
	switch f {
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterBilinear:
		return imaging.Linear
	case FilterBicubic:
		return imaging.CatmullRom
	default:
		return imaging.Lanczos
	}
}
