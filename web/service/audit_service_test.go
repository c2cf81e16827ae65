package service

import (
	"testing"
	"time"

	"postboard/database"
	"postboard/database/model"

	"github.com/stretchr/testify/assert"
)

func TestAuditService(t *testing.T) {
	setup()
	defer teardown()

	service := AuditService{}

	service.LogAction(1, "CREATE", "post", 10, "127.0.0.1", map[string]any{"title": "hello"})
	service.LogAction(1, "DELETE", "post", 10, "127.0.0.1", nil)
	service.LogAction(2, "LOGIN", "user", 2, "10.0.0.5", nil)

	// Test unfiltered listing
	logs, total, err := service.GetAuditLogs(0, 10, 0, "", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 3)

	// Test filtering by user
	logs, total, err = service.GetAuditLogs(2, 10, 0, "", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "LOGIN", logs[0].Action)

	// Test filtering by action and resource
	logs, total, err = service.GetAuditLogs(0, 10, 0, "CREATE", "post")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 10, logs[0].ResourceId)
	assert.Contains(t, logs[0].Details, "hello")

	// Test CleanOldLogs
	err = service.CleanOldLogs(0)
	assert.Error(t, err)

	old := time.Now().AddDate(0, 0, -120)
	err = database.GetDB().Model(&model.AuditLog{}).
		Where("user_id = ?", 2).
		Update("created_at", old).Error
	assert.NoError(t, err)

	assert.NoError(t, service.CleanOldLogs(90))
	_, total, err = service.GetAuditLogs(0, 10, 0, "", "")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
