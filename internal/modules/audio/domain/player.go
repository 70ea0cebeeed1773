package domain

type Track struct {
	ID    string
	Title string
	URL   string
}

const ChimeURL = "https://assets.mixkit.co/active_storage/sfx/2869/2869-preview.mp3"

var catalog = []Track{
	{ID: "1", Title: "Midnight Rain", URL: "https://cdn.pixabay.com/audio/2022/05/27/audio_1808fbf07a.mp3"},
	{ID: "2", Title: "Cozy Coffee Shop", URL: "https://cdn.pixabay.com/audio/2022/11/22/audio_febc508520.mp3"},
	{ID: "3", Title: "Deep Focus", URL: "https://cdn.pixabay.com/audio/2022/01/18/audio_d0a13f69d2.mp3"},
}

// Catalog is the fixed playlist, in play order.
func Catalog() []Track {
	out := make([]Track, len(catalog))
	copy(out, catalog)
	return out
}

const DefaultVolume = 0.5

// Player is the transport state of the ambient music. Like the timer state
// it is a value; every operation returns the next Player.
type Player struct {
	Index     int
	IsPlaying bool
	Volume    float64
	Muted     bool
	count     int
}

func NewPlayer(trackCount int) Player {
	return Player{Volume: DefaultVolume, count: trackCount}
}

func (p Player) TrackCount() int {
	return p.count
}

// Next advances to the following track, wrapping after the last one, and
// asks for playback.
func (p Player) Next() Player {
	if p.count > 0 {
		p.Index = (p.Index + 1) % p.count
	}
	p.IsPlaying = true
	return p
}

func (p Player) WithPlaying(playing bool) Player {
	p.IsPlaying = playing
	return p
}

// WithVolume clamps v to 0..1. Any audible level also lifts the mute.
func (p Player) WithVolume(v float64) Player {
	switch {
	case v < 0:
		v = 0
	case v > 1:
		v = 1
	}
	p.Volume = v
	if v > 0 {
		p.Muted = false
	}
	return p
}

func (p Player) ToggleMute() Player {
	p.Muted = !p.Muted
	return p
}

func (p Player) EffectiveVolume() float64 {
	if p.Muted {
		return 0
	}
	return p.Volume
}

// Silent is what the mute indicator shows.
func (p Player) Silent() bool {
	return p.Muted || p.Volume == 0
}

// ChimeVolume is fixed; the completion cue ignores the music volume and mute.
const ChimeVolume = 1.0
