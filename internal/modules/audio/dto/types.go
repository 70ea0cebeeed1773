package dto

type PlayerState struct {
	TrackID         string
	Title           string
	Index           int
	TrackCount      int
	IsPlaying       bool
	Volume          float64
	Muted           bool
	Silent          bool
	EffectiveVolume float64
}
