package layout

import (
	"io"
)

// ViewStrategy defines the interface for rendering one view
type ViewStrategy interface {
	Render(w io.Writer, frame *Frame, sizer *Sizer)
	GetName() string
}

// GetViewStrategy returns the strategy for a view name
func GetViewStrategy(view string) ViewStrategy {
	strategies := map[string]ViewStrategy{
		ViewDashboard: &DashboardStrategy{},
		ViewHistory:   &HistoryStrategy{},
		ViewSession:   &SessionStrategy{},
	}

	if strategy, exists := strategies[view]; exists {
		return strategy
	}

	// Default to the dashboard for unknown views
	return &DashboardStrategy{}
}
