package config

import "fmt"

var (
	Version       = "dev"
	CommitHash    = "n/a"
	BuildTime     = "n/a"
	VersionString = fmt.Sprintf("%s-%s (%s)", Version, CommitHash, BuildTime)
)

// ModelName is the spaCy model the NLP server is asked to run. Set at build time with
// -ldflags "-X github.com/medctx/medctx/config.ModelName=...".
var ModelName = "en_core_sci_lg"
