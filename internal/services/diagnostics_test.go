package services

import (
	"bytes"
	"encoding/json"
	"testing"

	"insertion-route-service/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestCollectorCountsByKind(t *testing.T) {
	c := &Collector{}
	c.Observe(domain.Diagnostic{Kind: domain.ConstraintCapacity, Route: domain.Route{0, 1, 0}})
	c.Observe(domain.Diagnostic{Kind: domain.ConstraintSchedule, Route: domain.Route{0, 2, 0}})
	c.Observe(domain.Diagnostic{Kind: domain.ConstraintCapacity, Route: domain.Route{0, 3, 0}})

	require.Equal(t, 2, c.Count(domain.ConstraintCapacity))
	require.Equal(t, 1, c.Count(domain.ConstraintSchedule))
	require.Zero(t, c.Count(domain.ConstraintFleetSize))
	require.Len(t, c.Diagnostics(), 3)
}

func TestLogObserverWritesWarning(t *testing.T) {
	var buf bytes.Buffer
	obs := LogObserver{Logger: zerolog.New(&buf)}

	obs.Observe(domain.Diagnostic{Kind: domain.ConstraintSchedule, Route: domain.Route{0, 4, 0}})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "warn", line["level"])
	require.Equal(t, "schedule", line["constraint"])
	require.Equal(t, "schedule issue for route", line["message"])
	require.Equal(t, []any{0.0, 4.0, 0.0}, line["route"])
}

func TestMultiObserverFansOut(t *testing.T) {
	a, b := &Collector{}, &Collector{}
	m := MultiObserver{a, nil, b}

	m.Observe(domain.Diagnostic{Kind: domain.ConstraintFleetSize, Route: domain.Route{0, 1, 0}})

	require.Equal(t, 1, a.Count(domain.ConstraintFleetSize))
	require.Equal(t, 1, b.Count(domain.ConstraintFleetSize))
}
