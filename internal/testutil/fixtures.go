package testutil

import (
	"time"

	"neptis/internal/models"
)

// CreateTestProfile creates a profile with default values
func CreateTestProfile(overrides ...func(*models.Profile)) *models.Profile {
	p := &models.Profile{
		ServerName: "home",
		Endpoint:   "http://127.0.0.1:9000",
		Username:   "bob",
		Password:   "secret",
	}
	for _, override := range overrides {
		override(p)
	}
	return p
}

// CreateTestSchedule creates a schedule with one enabled action
func CreateTestSchedule(overrides ...func(*models.ScheduleWithActions)) models.ScheduleWithActions {
	s := models.ScheduleWithActions{
		Schedule: models.Schedule{
			ServerName:    "home",
			ScheduleName:  "nightly",
			Cron:          "0 0 3 * * *",
			ShareUser:     "bob",
			SharePassword: "share-secret",
			LastUpdated:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		Actions: []models.Action{{
			ServerName:   "home",
			ScheduleName: "nightly",
			ActionName:   "docs",
			RemoteFolder: "/photos/data/docs",
			LocalFolder:  "/tmp/docs",
			Enabled:      true,
		}},
	}
	for _, override := range overrides {
		override(&s)
	}
	return s
}

// CreateTestJob creates a pending transfer job with default values
func CreateTestJob(overrides ...func(*models.TransferJob)) *models.TransferJob {
	job := &models.TransferJob{
		ID:           "job-1",
		ServerName:   "home",
		ScheduleName: "nightly",
		ActionName:   "docs",
		RemoteFolder: "/bob-photos-data/docs",
		LocalFolder:  "/tmp/docs",
		Credentials:  models.TransferCredentials{ShareUser: "bob", SharePassword: "share-secret"},
		LastUpdated:  time.Now().UTC(),
	}
	for _, override := range overrides {
		override(job)
	}
	return job
}
