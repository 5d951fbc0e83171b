package models

import "time"

// MatchInfo describes the match (track/level) a round is played on, as
// reported by the host at round start.
type MatchInfo struct {
	ID             string `json:"id"`   // track uid, the custom-time key
	Name           string `json:"name"` // display name, may carry host formatting codes
	AuthorTimeMsec int64  `json:"author_time_ms"`
}

// AuthorTime returns the author time as a duration.
func (m MatchInfo) AuthorTime() time.Duration {
	return time.Duration(m.AuthorTimeMsec) * time.Millisecond
}

// AuthorTimeSeconds returns the author time rounded to the nearest second.
func (m MatchInfo) AuthorTimeSeconds() int {
	if m.AuthorTimeMsec <= 0 {
		return 0
	}
	return int((m.AuthorTimeMsec + 500) / 1000)
}
