package common

// Content limits enforced at the service boundary. They mirror the limits
// the admin forms enforce so direct API callers cannot exceed them.
const (
	MaxTitleLen       = 20
	MaxTaglineLen     = 25
	MaxExtrasLen      = 150
	MaxDescriptionLen = 180
	MaxItemNameLen    = 65

	// MaxImageSize caps uploads at 10 MiB.
	MaxImageSize = 10 << 20
)
