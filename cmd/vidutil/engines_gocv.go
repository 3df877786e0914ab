//go:build gocv

package main

import (
	"github.com/user/vidutil/pkg/adapters/gocvengine"
	"github.com/user/vidutil/pkg/adapters/mp4probe"
	"github.com/user/vidutil/pkg/config"
	"github.com/user/vidutil/pkg/ports"
)

func init() {
	engines[config.EngineGoCV] = func(cfg config.Config, log ports.Logger) engineSet {
		e := gocvengine.New()
		return engineSet{
			Decoder: e,
			Prober:  mp4probe.New(e),
			Images:  e,
			Encoder: e.Encoder(),
		}
	}
}
