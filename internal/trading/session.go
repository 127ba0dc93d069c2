package trading

import "time"

// ReferenceZone is the single zone every session boundary is expressed in.
var ReferenceZone = time.UTC

// SessionInfo describes the trading window active at a given instant.
type SessionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// sessionWindow covers the hours [Start, End) in ReferenceZone.
type sessionWindow struct {
	Start, End int
	Info       SessionInfo
}

// The windows partition 0..24 with no gap or overlap.
var sessionWindows = []sessionWindow{
	{0, 7, SessionInfo{Name: "ASIA SESSION", Description: "Stabilization", Icon: "🌏"}},
	{7, 14, SessionInfo{Name: "LONDON SESSION", Description: "Volatility", Icon: "🏰"}},
	{14, 21, SessionInfo{Name: "NY SESSION", Description: "High Volume", Icon: "🗽"}},
	{21, 24, SessionInfo{Name: "AFTER MARKET", Description: "Low Liquidity", Icon: "🌑"}},
}

// ClassifySession maps now to its trading session.
func ClassifySession(now time.Time) SessionInfo {
	hour := now.In(ReferenceZone).Hour()
	for _, w := range sessionWindows {
		if hour >= w.Start && hour < w.End {
			return w.Info
		}
	}
	// unreachable: Hour() is always in [0, 23]
	return sessionWindows[len(sessionWindows)-1].Info
}

// Sessions lists every session in chronological order.
func Sessions() []SessionInfo {
	out := make([]SessionInfo, 0, len(sessionWindows))
	for _, w := range sessionWindows {
		out = append(out, w.Info)
	}
	return out
}

// CurrentSession classifies the instant returned by now.
func CurrentSession(now func() time.Time) SessionInfo {
	return ClassifySession(now())
}
