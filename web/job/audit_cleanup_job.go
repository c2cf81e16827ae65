package job

import (
	"postboard/logger"
	"postboard/web/service"
)

// AuditCleanupJob prunes audit rows past the retention window.
type AuditCleanupJob struct {
	auditService   service.AuditService
	settingService service.SettingService
}

func NewAuditCleanupJob() *AuditCleanupJob {
	return &AuditCleanupJob{
		auditService:   service.AuditService{},
		settingService: service.SettingService{},
	}
}

func (j *AuditCleanupJob) Run() {
	logger.Debug("audit cleanup job started")

	retentionDays, err := j.settingService.GetAuditRetentionDays()
	if err != nil || retentionDays <= 0 {
		retentionDays = 90
	}

	err = j.auditService.CleanOldLogs(retentionDays)
	if err != nil {
		logger.Warning("failed to clean old audit logs:", err)
	} else {
		logger.Debugf("audit cleanup completed (retention: %d days)", retentionDays)
	}
}
