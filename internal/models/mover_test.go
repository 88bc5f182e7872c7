package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoverEvent_Stats(t *testing.T) {
	line := []byte(`{"level":"notice","msg":"\nTransferred: 1 MiB / 2 MiB, 50%\n","source":"accounting/stats.go:526",` +
		`"stats":{"bytes":1048576,"checks":3,"deletedDirs":0,"deletes":1,"renames":0,"retryError":false,` +
		`"speed":524288.5,"totalBytes":2097152,"totalChecks":3,"totalTransfers":2,"transfers":1,"listed":7},` +
		`"time":"2025-07-01T10:15:03.123456+00:00"}`)

	ev, ok := ParseMoverEvent(line)
	require.True(t, ok)
	require.True(t, ev.IsStats())
	assert.Equal(t, int64(1048576), ev.Stats.Bytes)
	assert.Equal(t, int64(2097152), ev.Stats.TotalBytes)
	assert.Equal(t, int64(7), ev.Stats.Listed)
	assert.InDelta(t, 524288.5, ev.Stats.Speed, 0.001)
	assert.Equal(t, 50.0, ev.Stats.Percentage())
	assert.False(t, ev.Terminal())
	assert.False(t, ev.IsError())
}

func TestParseMoverEvent_Terminal(t *testing.T) {
	ev, ok := ParseMoverEvent([]byte(`{"level":"error","msg":"","stats":{"fatalError":true,"errors":1}}`))
	require.True(t, ok)
	assert.True(t, ev.Terminal())
	assert.True(t, ev.IsError())
}

func TestParseMoverEvent_Ignored(t *testing.T) {
	for _, line := range []string{
		"",
		"2025/07/01 10:00:00 NOTICE: plain text line",
		"{not json",
		`{"unrelated":true}`,
		`[1,2,3]`,
	} {
		_, ok := ParseMoverEvent([]byte(line))
		assert.False(t, ok, line)
	}
}
