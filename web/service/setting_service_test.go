package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingService(t *testing.T) {
	setup()
	defer teardown()

	service := SettingService{}

	// Defaults apply before anything is written
	port, err := service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8000, port)

	listen, err := service.GetListen()
	assert.NoError(t, err)
	assert.Equal(t, "", listen)

	pageSize, err := service.GetPageSize()
	assert.NoError(t, err)
	assert.Equal(t, 100, pageSize)

	tokenExpiry, err := service.GetTokenExpiryMinutes()
	assert.NoError(t, err)
	assert.Equal(t, 60, tokenExpiry)

	retention, err := service.GetAuditRetentionDays()
	assert.NoError(t, err)
	assert.Equal(t, 90, retention)

	// Test SetPort
	assert.NoError(t, service.SetPort(9090))
	port, err = service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 9090, port)

	// Test GetAllSetting
	allSetting, err := service.GetAllSetting()
	assert.NoError(t, err)
	assert.Equal(t, 9090, allSetting.WebPort)
	assert.Equal(t, 100, allSetting.PageSize)

	// The signing secret is generated once and then persists
	secret, err := service.GetJWTSecret()
	assert.NoError(t, err)
	assert.NotEmpty(t, secret)
	again, err := service.GetJWTSecret()
	assert.NoError(t, err)
	assert.Equal(t, secret, again)

	// Environment override wins over the stored secret
	t.Setenv("PB_JWT_SECRET", "from-env")
	fromEnv, err := service.GetJWTSecret()
	assert.NoError(t, err)
	assert.Equal(t, "from-env", fromEnv)
	t.Setenv("PB_JWT_SECRET", "")

	// Test ResetSettings
	assert.NoError(t, service.ResetSettings())
	port, err = service.GetPort()
	assert.NoError(t, err)
	assert.Equal(t, 8000, port)
}
