package notifications

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptis/internal/config"
	"neptis/internal/models"
	"neptis/internal/testutil"
)

type sent struct {
	title, message, icon string
}

func createTestNotifier(enabled bool) (*DesktopNotifier, *[]sent) {
	cfg := &config.Config{
		Notifications: config.NotificationsConfig{
			Desktop: config.DesktopConfig{Enabled: enabled, AppName: "neptis", Icon: "/usr/share/icons/neptis.png"},
		},
	}
	n := NewDesktopNotifier(cfg)
	var out []sent
	n.send = func(title, message, icon string) error {
		out = append(out, sent{title, message, icon})
		return nil
	}
	return n, &out
}

func finishedJob(overrides ...func(*models.TransferJob)) *models.TransferJob {
	start := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Second)
	return testutil.CreateTestJob(append([]func(*models.TransferJob){func(j *models.TransferJob) {
		j.StartDate = &start
		j.EndDate = &end
	}}, overrides...)...)
}

func TestNewDesktopNotifier(t *testing.T) {
	n, _ := createTestNotifier(true)

	assert.True(t, n.IsEnabled())
	assert.Equal(t, "neptis", n.appName)
	assert.NotNil(t, n.send)
}

func TestDisabledNotifierSendsNothing(t *testing.T) {
	n, out := createTestNotifier(false)

	require.NoError(t, n.NotifyMessage("home", models.Message{Subject: "hi"}))
	require.NoError(t, n.NotifyJobFailed(finishedJob()))
	require.NoError(t, n.NotifyJobCompleted(finishedJob()))
	assert.Empty(t, *out)
}

func TestNotifyMessage(t *testing.T) {
	n, out := createTestNotifier(true)

	require.NoError(t, n.NotifyMessage("home", models.Message{ID: "m1", Subject: "Disk almost full", Text: "photos is at 95%"}))
	require.NoError(t, n.NotifyMessage("home", models.Message{ID: "m2", Text: "no subject"}))

	require.Len(t, *out, 2)
	assert.Equal(t, sent{"Disk almost full", "photos is at 95%", "/usr/share/icons/neptis.png"}, (*out)[0])
	assert.Equal(t, "Message from home", (*out)[1].title)
}

func TestNotifyJobFailed(t *testing.T) {
	n, out := createTestNotifier(true)
	job := finishedJob(func(j *models.TransferJob) {
		j.FatalErrors = models.StringList{models.CancelledMessage}
		j.LastStats = &models.TransferStats{Bytes: 512 * 1024, TotalBytes: 1024 * 1024}
	})

	require.NoError(t, n.NotifyJobFailed(job))

	require.Len(t, *out, 1)
	assert.Equal(t, "neptis: transfer failed: home/nightly/docs", (*out)[0].title)
	msg := (*out)[0].message
	assert.Contains(t, msg, "Error: Operation cancelled")
	assert.Contains(t, msg, "Duration: 1m30s")
	assert.Contains(t, msg, "Progress: 50.0% (512.0 KB/1.0 MB)")
	assert.Contains(t, msg, "Job ID: job-1")
}

func TestNotifyJobCompleted(t *testing.T) {
	tests := []struct {
		name     string
		job      *models.TransferJob
		wantSent bool
	}{
		{"transferred data", finishedJob(func(j *models.TransferJob) {
			j.LastStats = &models.TransferStats{Bytes: 2048, Speed: 1024}
		}), true},
		{"skipped unchanged folder", finishedJob(func(j *models.TransferJob) {
			j.Warnings = models.StringList{"Local folder unchanged since last successful transfer, skipping transfer"}
		}), false},
		{"backup only", finishedJob(func(j *models.TransferJob) {
			j.Warnings = models.StringList{"a.txt: permission denied"}
			j.PostBackup = true
		}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, out := createTestNotifier(true)
			require.NoError(t, n.NotifyJobCompleted(tt.job))
			assert.Equal(t, tt.wantSent, len(*out) == 1)
		})
	}
}

func TestNotifySendError(t *testing.T) {
	n, _ := createTestNotifier(true)
	n.send = func(title, message, icon string) error { return errors.New("no notification daemon") }

	err := n.NotifyMessage("home", models.Message{Subject: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no notification daemon")
}

func TestBuildJobCompletedMessage(t *testing.T) {
	job := finishedJob(func(j *models.TransferJob) {
		j.LastStats = &models.TransferStats{Bytes: 3 * 1024 * 1024, Speed: 1536}
		j.PostBackup = true
	})

	msg := buildJobCompletedMessage(job)

	assert.Contains(t, msg, "Local Folder: /tmp/docs")
	assert.Contains(t, msg, "Remote Folder: /bob-photos-data/docs")
	assert.Contains(t, msg, "Transferred: 3.0 MB")
	assert.Contains(t, msg, "Avg Speed: 1.5 KB/s")
	assert.Contains(t, msg, "Backup: done")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatBytes(tt.bytes))
	}
}
