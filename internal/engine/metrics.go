package engine

// metrics holds the engine's internal counters. Access is guarded by
// the engine mutex.
type metrics struct {
	eventsProcessed    int64
	gesturesRecognized int64
	actionsEmitted     int64
	customMatches      int64
}

// Metrics is a snapshot of the engine counters.
type Metrics struct {
	EventsProcessed    int64 `json:"eventsProcessed"`
	GesturesRecognized int64 `json:"gesturesRecognized"`
	ActionsEmitted     int64 `json:"actionsEmitted"`
	CustomMatches      int64 `json:"customMatches"`
}

// Metrics returns a snapshot of the engine counters.
func (e *Engine) Metrics() Metrics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Metrics{
		EventsProcessed:    e.metrics.eventsProcessed,
		GesturesRecognized: e.metrics.gesturesRecognized,
		ActionsEmitted:     e.metrics.actionsEmitted,
		CustomMatches:      e.metrics.customMatches,
	}
}
