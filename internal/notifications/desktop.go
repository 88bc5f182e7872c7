package notifications

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"neptis/internal/config"
	"neptis/internal/interfaces"
	"neptis/internal/models"
)

// DesktopNotifier posts notifications through the platform notification
// service.
type DesktopNotifier struct {
	appName string
	icon    string
	enabled bool
	send    func(title, message, icon string) error
}

var _ interfaces.Notifier = (*DesktopNotifier)(nil)

func NewDesktopNotifier(cfg *config.Config) *DesktopNotifier {
	desktop := cfg.GetNotifications().Desktop
	return &DesktopNotifier{
		appName: desktop.AppName,
		icon:    desktop.Icon,
		enabled: desktop.Enabled,
		send:    beeepNotify,
	}
}

func beeepNotify(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

func (d *DesktopNotifier) IsEnabled() bool {
	return d.enabled
}

// NotifyMessage shows a server message with its subject as the title.
func (d *DesktopNotifier) NotifyMessage(serverName string, msg models.Message) error {
	if !d.enabled {
		return nil
	}
	title := msg.Subject
	if title == "" {
		title = fmt.Sprintf("Message from %s", serverName)
	}
	return d.notify(title, msg.Text)
}

func (d *DesktopNotifier) NotifyJobFailed(job *models.TransferJob) error {
	if !d.enabled {
		return nil
	}
	title := fmt.Sprintf("%s: transfer failed: %s", d.appName, jobName(job))
	return d.notify(title, buildJobFailedMessage(job))
}

// NotifyJobCompleted only reports transfers that actually moved data or ran
// a backup.
func (d *DesktopNotifier) NotifyJobCompleted(job *models.TransferJob) error {
	if !d.enabled {
		return nil
	}
	if len(job.Warnings) > 0 && (job.LastStats == nil || job.LastStats.Bytes == 0) && !job.PostBackup {
		return nil
	}
	title := fmt.Sprintf("%s: transfer completed: %s", d.appName, jobName(job))
	return d.notify(title, buildJobCompletedMessage(job))
}

func (d *DesktopNotifier) notify(title, message string) error {
	slog.Debug("Sending desktop notification", "title", title)
	if err := d.send(title, message, d.icon); err != nil {
		return fmt.Errorf("failed to send desktop notification: %w", err)
	}
	return nil
}

func jobName(job *models.TransferJob) string {
	return fmt.Sprintf("%s/%s/%s", job.ServerName, job.ScheduleName, job.ActionName)
}

func buildJobFailedMessage(job *models.TransferJob) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("Local Folder: %s\n", job.LocalFolder))
	msg.WriteString(fmt.Sprintf("Remote Folder: %s\n", job.RemoteFolder))

	if len(job.FatalErrors) > 0 {
		msg.WriteString(fmt.Sprintf("Error: %s\n", job.FatalErrors[0]))
	}

	if job.StartDate != nil && job.EndDate != nil {
		msg.WriteString(fmt.Sprintf("Duration: %s\n", job.EndDate.Sub(*job.StartDate).Round(time.Second)))
	}

	if s := job.LastStats; s != nil && s.Bytes > 0 && s.TotalBytes > 0 {
		msg.WriteString(fmt.Sprintf("Progress: %.1f%% (%s/%s)\n",
			s.Percentage(), formatBytes(s.Bytes), formatBytes(s.TotalBytes)))
	}

	msg.WriteString(fmt.Sprintf("Job ID: %s", job.ID))
	return msg.String()
}

func buildJobCompletedMessage(job *models.TransferJob) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("Local Folder: %s\n", job.LocalFolder))
	msg.WriteString(fmt.Sprintf("Remote Folder: %s\n", job.RemoteFolder))

	if job.StartDate != nil && job.EndDate != nil {
		msg.WriteString(fmt.Sprintf("Duration: %s\n", job.EndDate.Sub(*job.StartDate).Round(time.Second)))
	}

	if s := job.LastStats; s != nil {
		if s.Bytes > 0 {
			msg.WriteString(fmt.Sprintf("Transferred: %s\n", formatBytes(s.Bytes)))
		}
		if s.Speed > 0 {
			msg.WriteString(fmt.Sprintf("Avg Speed: %s/s\n", formatBytes(int64(s.Speed))))
		}
	}
	if job.PostBackup {
		msg.WriteString("Backup: done\n")
	}

	msg.WriteString(fmt.Sprintf("Job ID: %s", job.ID))
	return msg.String()
}

func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
