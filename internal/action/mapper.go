package action

import (
	"sync"

	"github.com/astralplayer/gesturekit/internal/gesture"
)

// Key identifies one slot in the mapping table: the zone a gesture
// started in and the gesture type.
type Key struct {
	Zone gesture.Zone `json:"zone"`
	Type gesture.Type `json:"type"`
}

// Mapper resolves a (zone, gestureType, payload) tuple into a semantic
// action. Custom overrides win over the built-in defaults. The override
// table is replaced wholesale on every write so the recognition hot
// path, which only reads, never observes a partial update.
type Mapper struct {
	mu        sync.RWMutex
	overrides map[Key]Action
}

// NewMapper creates a Mapper seeded with the built-in default table.
func NewMapper() *Mapper {
	return &Mapper{overrides: map[Key]Action{}}
}

// Resolve returns the action for a gesture. Lookup order: an exact
// override for the key wins; otherwise the built-in default for the
// (zone, type) pair applies. Continuous kinds carry the payload as
// their amount.
func (m *Mapper) Resolve(zone gesture.Zone, typ gesture.Type, payload float64) Action {
	m.mu.RLock()
	override, ok := m.overrides[Key{Zone: zone, Type: typ}]
	m.mu.RUnlock()

	if ok {
		return withPayload(override, payload)
	}
	return defaultFor(zone, typ, payload)
}

// SetOverride binds a custom action to a gesture key, replacing any
// previous binding. The table is swapped atomically.
func (m *Mapper) SetOverride(key Key, a Action) {
	m.mu.Lock()
	next := make(map[Key]Action, len(m.overrides)+1)
	for k, v := range m.overrides {
		next[k] = v
	}
	next[key] = a
	m.overrides = next
	m.mu.Unlock()
}

// ClearOverride removes the custom binding for a key, restoring the
// built-in default.
func (m *Mapper) ClearOverride(key Key) {
	m.mu.Lock()
	next := make(map[Key]Action, len(m.overrides))
	for k, v := range m.overrides {
		if k != key {
			next[k] = v
		}
	}
	m.overrides = next
	m.mu.Unlock()
}

// ResetDefaults drops all overrides, restoring the seed table.
func (m *Mapper) ResetDefaults() {
	m.mu.Lock()
	m.overrides = map[Key]Action{}
	m.mu.Unlock()
}

// Overrides returns a copy of the current override table.
func (m *Mapper) Overrides() map[Key]Action {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Key]Action, len(m.overrides))
	for k, v := range m.overrides {
		out[k] = v
	}
	return out
}

// defaultFor is the built-in default table, matched exhaustively over
// the gesture type.
func defaultFor(zone gesture.Zone, typ gesture.Type, payload float64) Action {
	switch typ {
	case gesture.TypeSingleTap:
		return Action{Kind: KindToggleControls}

	case gesture.TypeDoubleTap:
		// Double tap on the edges skips; in the middle it toggles
		// playback.
		switch zone {
		case gesture.ZoneBrightness:
			return Action{Kind: KindSeekBy, Amount: -10000}
		case gesture.ZoneVolume:
			return Action{Kind: KindSeekBy, Amount: 10000}
		default:
			return Action{Kind: KindTogglePlayPause}
		}

	case gesture.TypeLongPress, gesture.TypeSpeed:
		return Action{Kind: KindSetSpeed, Amount: payload}

	case gesture.TypeSeek:
		return Action{Kind: KindSeekBy, Amount: payload}

	case gesture.TypeBrightness:
		return Action{Kind: KindSetBrightness, Amount: payload}

	case gesture.TypeVolume:
		return Action{Kind: KindSetVolume, Amount: payload}

	case gesture.TypePinchZoom:
		return Action{Kind: KindZoomBy, Amount: payload}

	case gesture.TypeRotate:
		return Action{Kind: KindRotateBy, Amount: payload}

	case gesture.TypeThreeFingerSwipeLeft:
		return Action{Kind: KindPrevTrack}

	case gesture.TypeThreeFingerSwipeRight:
		return Action{Kind: KindNextTrack}

	case gesture.TypeThreeFingerTap:
		return Action{Kind: KindScreenshot}

	case gesture.TypeFourFingerTap:
		return Action{Kind: KindTogglePlaylist}

	default:
		return Action{Kind: KindNone}
	}
}

// withPayload applies the gesture payload to an override whose kind is
// continuous; discrete overrides keep their configured amount.
func withPayload(a Action, payload float64) Action {
	switch a.Kind {
	case KindSeekBy, KindSetBrightness, KindSetVolume, KindSetSpeed, KindZoomBy, KindRotateBy:
		if payload != 0 {
			a.Amount = payload
		}
	}
	return a
}
