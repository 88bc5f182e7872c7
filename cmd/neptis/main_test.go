package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"neptis/internal/browser"
	"neptis/internal/models"
)

func TestProgress(t *testing.T) {
	assert.Equal(t, "", progress(&models.TransferJob{}))

	job := &models.TransferJob{LastStats: &models.TransferStats{Bytes: 512, TotalBytes: 1024}}
	assert.Equal(t, "50% of 1.0 KiB", progress(job))

	job.LastStats.OnBackup = true
	job.LastStats.BackupProgress = 0.25
	assert.Equal(t, "backup 25%", progress(job))
}

func TestSelectModes(t *testing.T) {
	assert.Equal(t, browser.Explore, selectModes[""])
	assert.Equal(t, browser.WritableFolder, selectModes["writable-folder"])
	_, ok := selectModes["anything"]
	assert.False(t, ok)
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"server", "add"},
		{"point", "create"},
		{"snapshot", "list"},
		{"restore"},
		{"schedule", "add"},
		{"action", "remove"},
		{"transfer", "start"},
		{"mount"},
	} {
		cmd, _, err := rootCmd.Find(path)
		if assert.NoError(t, err, path) {
			assert.Equal(t, path[len(path)-1], cmd.Name())
		}
	}
}
