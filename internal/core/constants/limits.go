package constants

const (
	// Retention cap for the sample sequence; roughly 48h at 5s intervals
	MaxSamples = 40000

	// Number of completed charge sessions kept, oldest evicted first
	MaxCompletedSessions = 2

	// Capacity (percent) at which a charge session counts as completed
	CompletionThreshold = 90.0

	// Viewport zoom shrink factor and pan step as a fraction of the window
	ZoomFactor   = 0.7
	PanFraction  = 0.2
	FitSnapRatio = 0.99
)
