package ports

import "time"

// Receives counters from route construction runs (e.g. for metrics export).
type ConstructionRecorder interface {
	RouteOpened()
	NodeInserted()
	RunFinished(dur time.Duration, routes int, unvisited int)
}
