// Package action translates classified gestures into semantic playback
// actions through a user-overridable mapping table, and supports
// recording arbitrary touch-point sequences as named custom gestures.
package action

import "fmt"

// Kind identifies a semantic action.
type Kind int

const (
	// KindNone is the absence of an action.
	KindNone Kind = iota
	// KindSeekBy seeks relative by Amount milliseconds.
	KindSeekBy
	// KindSetBrightness sets the brightness level to Amount [0,1].
	KindSetBrightness
	// KindSetVolume sets the volume level to Amount [0,1].
	KindSetVolume
	// KindSetSpeed sets the playback rate to Amount.
	KindSetSpeed
	// KindZoomBy scales the video surface by Amount.
	KindZoomBy
	// KindRotateBy rotates the video surface by Amount degrees.
	KindRotateBy
	// KindTogglePlayPause toggles playback.
	KindTogglePlayPause
	// KindToggleControls shows or hides the on-screen controls.
	KindToggleControls
	// KindTogglePlaylist shows or hides the playlist.
	KindTogglePlaylist
	// KindToggleMute toggles audio mute.
	KindToggleMute
	// KindNextTrack advances to the next item.
	KindNextTrack
	// KindPrevTrack returns to the previous item.
	KindPrevTrack
	// KindScreenshot captures the current frame.
	KindScreenshot
	// KindCustom executes the action bound to a recorded custom
	// gesture, identified by CustomID.
	KindCustom
)

// String returns a stable name for the action kind, used as its
// storage representation.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSeekBy:
		return "seek_by"
	case KindSetBrightness:
		return "set_brightness"
	case KindSetVolume:
		return "set_volume"
	case KindSetSpeed:
		return "set_speed"
	case KindZoomBy:
		return "zoom_by"
	case KindRotateBy:
		return "rotate_by"
	case KindTogglePlayPause:
		return "toggle_play_pause"
	case KindToggleControls:
		return "toggle_controls"
	case KindTogglePlaylist:
		return "toggle_playlist"
	case KindToggleMute:
		return "toggle_mute"
	case KindNextTrack:
		return "next_track"
	case KindPrevTrack:
		return "prev_track"
	case KindScreenshot:
		return "screenshot"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParseKind converts a storage name back into a Kind.
func ParseKind(s string) (Kind, error) {
	for k := KindNone; k <= KindCustom; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return KindNone, fmt.Errorf("unknown action kind %q", s)
}

// Action is one semantic control signal emitted to playback/UI
// collaborators. Amount carries the payload relevant to the kind;
// CustomID is set only for KindCustom.
type Action struct {
	Kind     Kind    `json:"kind"`
	Amount   float64 `json:"amount,omitempty"`
	CustomID string  `json:"customId,omitempty"`
}

// String returns a human-readable rendering of the action.
func (a Action) String() string {
	switch a.Kind {
	case KindCustom:
		return fmt.Sprintf("%s(%s)", a.Kind, a.CustomID)
	case KindSeekBy, KindSetBrightness, KindSetVolume, KindSetSpeed, KindZoomBy, KindRotateBy:
		return fmt.Sprintf("%s(%.2f)", a.Kind, a.Amount)
	default:
		return a.Kind.String()
	}
}
