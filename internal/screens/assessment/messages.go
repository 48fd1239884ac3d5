package assessment

import "time"

// startMsg asks the screen to start its session on the update loop.
type startMsg struct{}

// clockTickMsg is sent every second while a session is in progress.
type clockTickMsg time.Time
