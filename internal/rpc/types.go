package rpc

// TabActivatedParams reports a tab switch or in-tab navigation.
type TabActivatedParams struct {
	URL string `json:"url"`
}

// IdleStateParams reports a system idle transition.
type IdleStateParams struct {
	State string `json:"state"`
}

// SetFocusModeParams toggles focus mode.
type SetFocusModeParams struct {
	Enabled bool `json:"enabled"`
}

// SetTimerRunningParams starts or pauses the timer.
type SetTimerRunningParams struct {
	Running bool `json:"isRunning"`
}

// DomainParams names one tracked domain.
type DomainParams struct {
	Domain string `json:"domain"`
}

// SetCategoryParams assigns a category to a domain.
type SetCategoryParams struct {
	Domain   string `json:"domain"`
	Category string `json:"category"`
}

// StatsParams selects a day; empty means today.
type StatsParams struct {
	Date string `json:"date,omitempty"`
}

// CurrentTabResponse describes the active session.
type CurrentTabResponse struct {
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// CategoryResponse reports a domain's category after a change.
type CategoryResponse struct {
	Domain   string `json:"domain"`
	Category string `json:"category"`
}

// InsightResponse carries a generated summary.
type InsightResponse struct {
	Text string `json:"text"`
}

// OKResponse acknowledges an action with no other result.
type OKResponse struct {
	Success bool `json:"success"`
}
