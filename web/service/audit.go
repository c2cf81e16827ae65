package service

import (
	"fmt"
	"time"

	"postboard/database"
	"postboard/database/model"
	"postboard/logger"

	json "github.com/goccy/go-json"
)

// AuditService records who changed what. Writes are best effort: a failed
// audit insert is logged and never fails the request that triggered it.
type AuditService struct{}

// LogAction appends an audit row for a mutating operation.
func (s *AuditService) LogAction(userId int, action string, resource string, resourceId int, ip string, details map[string]any) {
	db := database.GetDB()

	detailsJSON := ""
	if details != nil {
		jsonData, err := json.Marshal(details)
		if err != nil {
			logger.Warning("failed to marshal audit log details:", err)
		} else {
			detailsJSON = string(jsonData)
		}
	}

	auditLog := model.AuditLog{
		UserId:     userId,
		Action:     action,
		Resource:   resource,
		ResourceId: resourceId,
		Ip:         ip,
		Details:    detailsJSON,
	}

	if err := db.Create(&auditLog).Error; err != nil {
		logger.Warningf("failed to create audit log: user=%d, action=%s, resource=%s, error=%v", userId, action, resource, err)
	}
}

// GetAuditLogs retrieves audit logs with filters and pagination.
func (s *AuditService) GetAuditLogs(userId int, limit int, offset int, action string, resource string) ([]model.AuditLog, int64, error) {
	db := database.GetDB()

	query := db.Model(&model.AuditLog{})

	if userId > 0 {
		query = query.Where("user_id = ?", userId)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resource != "" {
		query = query.Where("resource = ?", resource)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]model.AuditLog, 0)
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// CleanOldLogs removes audit logs older than the given number of days.
func (s *AuditService) CleanOldLogs(days int) error {
	if days <= 0 {
		return fmt.Errorf("days must be greater than 0")
	}

	db := database.GetDB()
	cutoff := time.Now().AddDate(0, 0, -days)

	result := db.Where("created_at < ?", cutoff).Delete(&model.AuditLog{})
	if result.Error != nil {
		return result.Error
	}

	logger.Infof("cleaned %d old audit logs (older than %d days)", result.RowsAffected, days)
	return nil
}
