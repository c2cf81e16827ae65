package service

import (
	"strconv"

	"postboard/config"
	"postboard/database"
	"postboard/database/model"
	"postboard/util/common"
	"postboard/util/random"
	"postboard/web/entity"
)

var defaultValueMap = map[string]string{
	"webListen":          "",
	"webPort":            "8000",
	"jwtSecret":          random.Seq(32),
	"tokenExpiryMinutes": "60",
	"pageSize":           "100",
	"auditRetentionDays": "90",
}

// SettingService persists key/value configuration in the settings table,
// falling back to defaultValueMap for keys that were never written.
type SettingService struct{}

func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	listen, err := s.GetListen()
	if err != nil {
		return nil, err
	}
	port, err := s.GetPort()
	if err != nil {
		return nil, err
	}
	tokenExpiry, err := s.GetTokenExpiryMinutes()
	if err != nil {
		return nil, err
	}
	pageSize, err := s.GetPageSize()
	if err != nil {
		return nil, err
	}
	retentionDays, err := s.GetAuditRetentionDays()
	if err != nil {
		return nil, err
	}

	return &entity.AllSetting{
		WebListen:          listen,
		WebPort:            port,
		TokenExpiryMinutes: tokenExpiry,
		PageSize:           pageSize,
		AuditRetentionDays: retentionDays,
	}, nil
}

func (s *SettingService) ResetSettings() error {
	db := database.GetDB()
	return db.Where("1 = 1").Delete(model.Setting{}).Error
}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("key <%v> not in defaultValueMap", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) setString(key string, value string) error {
	return s.saveSetting(key, value)
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) setInt(key string, value int) error {
	return s.setString(key, strconv.Itoa(value))
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) SetListen(ip string) error {
	return s.setString("webListen", ip)
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) SetPort(port int) error {
	return s.setInt("webPort", port)
}

// GetJWTSecret returns the token signing secret. The environment override
// wins; otherwise the stored secret is used, persisting the generated
// default on first access so tokens survive restarts.
func (s *SettingService) GetJWTSecret() (string, error) {
	if secret := config.GetEnvJWTSecret(); secret != "" {
		return secret, nil
	}
	_, err := s.getSetting("jwtSecret")
	if database.IsNotFound(err) {
		secret := defaultValueMap["jwtSecret"]
		if err := s.saveSetting("jwtSecret", secret); err != nil {
			return "", err
		}
		return secret, nil
	} else if err != nil {
		return "", err
	}
	return s.getString("jwtSecret")
}

func (s *SettingService) GetTokenExpiryMinutes() (int, error) {
	return s.getInt("tokenExpiryMinutes")
}

func (s *SettingService) SetTokenExpiryMinutes(minutes int) error {
	return s.setInt("tokenExpiryMinutes", minutes)
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) GetAuditRetentionDays() (int, error) {
	return s.getInt("auditRetentionDays")
}
