// Package whisper implements the white-noise instrument: a note gate driven
// by performance events, one volume parameter and a noise generator.
package whisper

import (
	"github.com/justyntemme/whisper/pkg/framework/param"
)

// Parameter indices. They are stable because hosts store them in automation.
const (
	ParamVolume int32 = iota
)

// DefaultVolume is the volume a new instance starts with.
const DefaultVolume float32 = 1.0

// NewParameters creates the parameter store for one instance.
func NewParameters() *param.Registry {
	return param.NewRegistry(
		param.New(uint32(ParamVolume), "volume").
			ShortName("vol").
			Range(0, 1).
			Default(DefaultVolume).
			Unit("x").
			Formatter(param.FixedFormatter(3), param.FloatParser).
			Build(),
	)
}
