package readablepub

import (
	"github.com/mrjoshuak/readablepub/types"
)

// Article represents the readable version of a web page as returned by the
// extraction API.
type Article = types.Article

// Image is a binary resource embedded in a package under its local name.
type Image = types.Image

// ImageSet keeps images keyed by local name in insertion order.
type ImageSet = types.ImageSet

// ConversionOptions configures a conversion run.
type ConversionOptions = types.ConversionOptions

// DefaultOptions returns the default conversion options.
func DefaultOptions() ConversionOptions {
	return types.DefaultOptions()
}

// BuildInfo contains version and build information for the readablepub library.
type BuildInfo = types.BuildInfo

// GetBuildInfo returns the current version information for the readablepub library.
func GetBuildInfo() BuildInfo {
	return types.GetBuildInfo()
}

// Version is the current version of the readablepub library.
var Version = types.Version

// Name is the name of the readablepub library.
var Name = types.Name
