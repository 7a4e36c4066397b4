// Package job contains scheduled maintenance jobs for the pillbox
// service.
package job

import (
	"time"

	"pillbox/logger"
	"pillbox/web/service"
)

// StatusRolloverJob resets Taken medicines back to Pending once a day
// while their date range still covers today, so recurring doses show up
// again on the dashboard.
type StatusRolloverJob struct {
	medicineService service.MedicineService
}

func NewStatusRolloverJob() *StatusRolloverJob {
	return new(StatusRolloverJob)
}

// Run implements cron.Job.
func (j *StatusRolloverJob) Run() {
	today := time.Now().Format("2006-01-02")
	n, err := j.medicineService.RolloverTaken(today)
	if err != nil {
		logger.Warning("status rollover job err:", err)
		return
	}
	if n > 0 {
		logger.Infof("status rollover: %d medicines back to pending", n)
	}
}
