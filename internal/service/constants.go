package service

const (
	maxPromptRunes = 2000

	fallbackSize     = "768x768"
	defaultStrength  = 0.85
	defaultNumSteps  = 25
	defaultGuidance  = 7.5
	seedUpperBound   = 1_000_000_000
	binaryResultMIME = "image/png"
)

// KnownSizes are the resolutions offered by the web page. Requests are not
// restricted to them.
var KnownSizes = []string{"512x512", "768x768", "1024x1024"}
