// Package engine wires the recognition pipeline together: it routes raw
// pointer events between the single-finger state machine and the
// multi-finger recognizer, resolves confirmed gestures into actions,
// tracks player levels, and feeds recording and haptic feedback.
package engine

import (
	"sync"

	"github.com/astralplayer/gesturekit/internal/action"
	"github.com/astralplayer/gesturekit/internal/feedback"
	"github.com/astralplayer/gesturekit/internal/gesture"
	"github.com/astralplayer/gesturekit/internal/touch"
)

// maxPathPoints bounds the per-gesture path kept for custom matching.
const maxPathPoints = 256

// defaultLevel is the assumed brightness and volume level before the
// host reports real values.
const defaultLevel = 0.5

// Playback exposes the player transport the engine adjusts. Position
// and duration are in milliseconds. A nil Playback disables seek
// clamping.
type Playback interface {
	PositionMs() int64
	DurationMs() int64
}

// Listener receives a state snapshot after every processed event.
type Listener func(gesture.State)

// ActionListener receives every resolved action, for sinks such as
// host plugins that apply actions outside the API response path.
type ActionListener func(action.Action)

// Options configures an Engine. Zero-valued fields fall back to
// defaults.
type Options struct {
	Thresholds  gesture.Thresholds
	Zones       gesture.ZoneConfig
	Debounce    gesture.DebounceConfig
	MultiFinger gesture.MultiFingerConfig
	// MatchTolerance is the DTW tolerance for custom gesture matching.
	MatchTolerance float64
	// Haptics and Sound are optional platform capabilities.
	Haptics feedback.Haptics
	Sound   feedback.Sound
	// Playback is optional; when set, seek actions are clamped to the
	// media bounds.
	Playback Playback
}

// Engine is the synchronous core of the gesture system. One ProcessEvent
// call handles one raw pointer event and returns the actions it
// resolved, in order. All methods are safe for concurrent use; event
// processing itself is serialized.
type Engine struct {
	mu sync.RWMutex

	detector   *gesture.Detector
	recognizer *gesture.MultiFingerRecognizer
	mapper     *action.Mapper
	recorder   *action.Recorder
	matcher    *action.Matcher
	haptic     *feedback.Coordinator
	playback   Playback

	// Live pointer positions, used to seed the multi-finger recognizer
	// when a second finger lands mid-gesture.
	pointers map[int64]touch.Point

	// Path of the current single-finger gesture, kept for custom shape
	// matching on release.
	path []touch.Point

	// pendingCustom holds the matched custom gesture's action between
	// path matching and final resolution within one ProcessEvent call.
	pendingCustom action.Action

	brightness float64
	volume     float64

	listeners       []Listener
	actionListeners []ActionListener
	metrics         metrics
}

// New creates an Engine from options.
func New(opts Options) *Engine {
	if opts.Thresholds.TapWindowMs == 0 {
		opts.Thresholds = gesture.DefaultThresholds()
	}
	if opts.Zones.LeftFraction == 0 && opts.Zones.RightFraction == 0 {
		opts.Zones = gesture.DefaultZoneConfig()
	}

	return &Engine{
		detector:   gesture.NewDetector(opts.Thresholds, opts.Zones, opts.Debounce),
		recognizer: gesture.NewMultiFingerRecognizer(opts.MultiFinger),
		mapper:     action.NewMapper(),
		recorder:   action.NewRecorder(),
		matcher:    action.NewMatcher(opts.MatchTolerance),
		haptic:     feedback.NewCoordinator(opts.Haptics, opts.Sound),
		playback:   opts.Playback,
		pointers:   make(map[int64]touch.Point),
		brightness: defaultLevel,
		volume:     defaultLevel,
	}
}

// SetViewport updates the viewport dimensions used for zone
// classification.
func (e *Engine) SetViewport(w, h float64) {
	e.mu.Lock()
	e.detector.SetViewport(w, h)
	e.mu.Unlock()
}

// Mapper returns the action mapper for override management.
func (e *Engine) Mapper() *action.Mapper {
	return e.mapper
}

// Matcher returns the custom gesture matcher.
func (e *Engine) Matcher() *action.Matcher {
	return e.matcher
}

// Subscribe registers a listener invoked with a state snapshot after
// every processed event. Listeners run synchronously on the processing
// goroutine and must not block.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// SubscribeActions registers a listener invoked with every resolved
// action. Like state listeners, action listeners run synchronously and
// must not block; hand slow sinks off to a goroutine.
func (e *Engine) SubscribeActions(l ActionListener) {
	e.mu.Lock()
	e.actionListeners = append(e.actionListeners, l)
	e.mu.Unlock()
}

// State returns the live gesture state. While multiple fingers are
// down the multi-finger state wins; otherwise the single-finger state
// is reported.
func (e *Engine) State() gesture.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.recognizer.Active() {
		return e.recognizer.State()
	}
	return e.detector.State()
}

// Levels returns the engine-tracked brightness and volume levels in
// [0, 1].
func (e *Engine) Levels() (brightness, volume float64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.brightness, e.volume
}

// SetLevels seeds the brightness and volume levels from the host.
// Values clamp to [0, 1].
func (e *Engine) SetLevels(brightness, volume float64) {
	e.mu.Lock()
	e.brightness = clamp01(brightness)
	e.volume = clamp01(volume)
	e.mu.Unlock()
}

// ProcessEvent routes one raw pointer event through the pipeline and
// returns the actions resolved from any confirmed gestures. Malformed
// or out-of-order input degrades to a no-op.
func (e *Engine) ProcessEvent(ev touch.PointerEvent) []action.Action {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.metrics.eventsProcessed++

	if e.recorder.Recording() {
		e.recordEvent(ev)
		e.notifyLocked()
		return nil
	}

	var events []gesture.Event

	switch ev.Kind {
	case touch.EventDown:
		events = e.handleDown(ev)
	case touch.EventMove:
		events = e.handleMove(ev)
	case touch.EventUp:
		events = e.handleUp(ev)
	case touch.EventCancel:
		e.handleCancel(ev)
	}

	actions := e.resolveActions(events)
	for _, a := range actions {
		for _, l := range e.actionListeners {
			l(a)
		}
	}
	e.notifyLocked()
	return actions
}

// Reset forces the whole pipeline back to idle. Overrides, custom
// gestures and tracked levels survive; in-flight gesture state does
// not.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.detector.Reset()
	e.recognizer.Reset()
	e.pointers = make(map[int64]touch.Point)
	e.path = e.path[:0]
	e.mu.Unlock()
}

// StartRecording begins capturing raw touch points into a named custom
// gesture. Recognition is suspended until the recording stops.
func (e *Engine) StartRecording(name string) error {
	if err := e.recorder.Start(name); err != nil {
		return err
	}
	e.Reset()
	e.haptic.Fire(feedback.TriggerRecordingStart)
	return nil
}

// StopRecording finalizes the recording into a custom gesture and
// registers it with the matcher.
func (e *Engine) StopRecording() (*action.CustomGesture, error) {
	g, err := e.recorder.Stop()
	if err != nil {
		return nil, err
	}
	e.matcher.Add(g)
	e.haptic.Fire(feedback.TriggerRecordingStop)
	return g, nil
}

// Recording reports whether a recording session is active.
func (e *Engine) Recording() bool {
	return e.recorder.Recording()
}

func (e *Engine) handleDown(ev touch.PointerEvent) []gesture.Event {
	prev := len(e.pointers)
	e.pointers[ev.PointerID] = ev.Point()

	if prev == 0 {
		e.path = e.path[:0]
		e.path = append(e.path, ev.Point())
		e.haptic.Fire(feedback.TriggerGestureStart)
		return e.detector.HandleDown(ev)
	}

	// A second finger hands the sequence off to the multi-finger
	// recognizer. Seed it with the already-down pointers first.
	if prev == 1 && !e.recognizer.Active() {
		e.detector.Abort()
		e.path = e.path[:0]
		for id, p := range e.pointers {
			if id == ev.PointerID {
				continue
			}
			e.recognizer.HandleDown(touch.PointerEvent{
				Kind:      touch.EventDown,
				PointerID: id,
				X:         p.X,
				Y:         p.Y,
				Timestamp: p.Timestamp,
			})
		}
	}
	return e.recognizer.HandleDown(ev)
}

func (e *Engine) handleMove(ev touch.PointerEvent) []gesture.Event {
	if _, known := e.pointers[ev.PointerID]; !known {
		return nil
	}
	e.pointers[ev.PointerID] = ev.Point()

	if e.recognizer.Active() {
		return e.recognizer.HandleMove(ev)
	}

	if len(e.path) < maxPathPoints {
		e.path = append(e.path, ev.Point())
	}
	return e.detector.HandleMove(ev)
}

func (e *Engine) handleUp(ev touch.PointerEvent) []gesture.Event {
	if _, known := e.pointers[ev.PointerID]; !known {
		return nil
	}
	delete(e.pointers, ev.PointerID)

	if e.recognizer.Active() {
		return e.recognizer.HandleUp(ev)
	}

	if len(e.path) < maxPathPoints {
		e.path = append(e.path, ev.Point())
	}
	events := e.detector.HandleUp(ev)
	return e.applyCustomMatch(events)
}

func (e *Engine) handleCancel(ev touch.PointerEvent) {
	// A cancel kills the whole in-flight sequence. Fingers still down
	// are forgotten too, so their remaining moves cannot restart the
	// cancelled gesture as a fresh single-finger one.
	e.pointers = make(map[int64]touch.Point)
	e.path = e.path[:0]
	if e.recognizer.Active() {
		e.recognizer.HandleCancel(ev)
		return
	}
	e.detector.HandleCancel(ev)
}

// applyCustomMatch checks the finished single-finger path against the
// recorded custom gestures. A match with a bound action replaces the
// built-in continuous gesture it overlapped with.
func (e *Engine) applyCustomMatch(events []gesture.Event) []gesture.Event {
	if len(e.path) < 2 {
		return events
	}

	matches := e.matcher.Match(e.path)
	e.path = e.path[:0]
	if len(matches) == 0 {
		return events
	}

	best := matches[0]
	if best.Gesture.Action.Kind == action.KindNone {
		return events
	}
	e.metrics.customMatches++
	e.pendingCustom = best.Gesture.Action

	// Drop the zone-gesture final the same stroke produced.
	kept := events[:0]
	for _, evt := range events {
		if evt.Final && isContinuous(evt.Type) {
			continue
		}
		kept = append(kept, evt)
	}
	return append(kept, gesture.Event{Type: gesture.TypeCustom, Value: best.Score, Final: true})
}

// resolveActions maps confirmed gesture events to actions. Progress
// events update state only; long-press begin additionally fires
// feedback.
func (e *Engine) resolveActions(events []gesture.Event) []action.Action {
	var actions []action.Action
	for _, evt := range events {
		if !evt.Final {
			if evt.Type == gesture.TypeLongPress {
				e.haptic.Fire(feedback.TriggerLongPressStart)
				actions = append(actions, e.mapper.Resolve(evt.Zone, evt.Type, evt.Value))
			}
			continue
		}

		e.metrics.gesturesRecognized++
		if isMultiFinger(evt.Type) {
			e.haptic.Fire(feedback.TriggerMultiFinger)
		} else {
			e.haptic.Fire(feedback.TriggerGestureConfirm)
		}

		a := e.resolveFinal(evt)
		if a.Kind == action.KindNone {
			continue
		}
		actions = append(actions, a)
	}
	e.metrics.actionsEmitted += int64(len(actions))
	return actions
}

// resolveFinal turns one confirmed gesture into its action, applying
// level tracking and playback clamping.
func (e *Engine) resolveFinal(evt gesture.Event) action.Action {
	if evt.Type == gesture.TypeCustom {
		a := e.pendingCustom
		e.pendingCustom = action.Action{}
		if a.Kind == action.KindSeekBy {
			a.Amount = e.clampSeek(a.Amount)
		}
		return a
	}

	a := e.mapper.Resolve(evt.Zone, evt.Type, evt.Value)

	switch a.Kind {
	case action.KindSeekBy:
		a.Amount = e.clampSeek(a.Amount)
	case action.KindSetBrightness:
		// The gesture payload is a relative delta; the action carries
		// the resulting absolute level.
		e.brightness = clamp01(e.brightness + a.Amount)
		a.Amount = e.brightness
	case action.KindSetVolume:
		e.volume = clamp01(e.volume + a.Amount)
		a.Amount = e.volume
	}
	return a
}

// clampSeek limits a seek delta so the target position stays inside the
// media bounds. Without playback info the delta passes through.
func (e *Engine) clampSeek(deltaMs float64) float64 {
	if e.playback == nil {
		return deltaMs
	}
	pos := float64(e.playback.PositionMs())
	dur := float64(e.playback.DurationMs())
	if dur <= 0 {
		return deltaMs
	}

	target := pos + deltaMs
	if target < 0 {
		target = 0
	}
	if target > dur {
		target = dur
	}
	return target - pos
}

func (e *Engine) recordEvent(ev touch.PointerEvent) {
	switch ev.Kind {
	case touch.EventDown, touch.EventMove, touch.EventUp:
		e.recorder.Record(ev.Point())
	}
}

func (e *Engine) notifyLocked() {
	if len(e.listeners) == 0 {
		return
	}
	st := e.detector.State()
	if e.recognizer.Active() {
		st = e.recognizer.State()
	}
	for _, l := range e.listeners {
		l(st)
	}
}

func isMultiFinger(t gesture.Type) bool {
	switch t {
	case gesture.TypePinchZoom, gesture.TypeRotate,
		gesture.TypeThreeFingerSwipeLeft, gesture.TypeThreeFingerSwipeRight,
		gesture.TypeThreeFingerTap, gesture.TypeFourFingerTap:
		return true
	}
	return false
}

func isContinuous(t gesture.Type) bool {
	switch t {
	case gesture.TypeSeek, gesture.TypeBrightness, gesture.TypeVolume:
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
