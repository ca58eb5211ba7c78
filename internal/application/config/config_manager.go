package config

type ConfigManager struct {
	configLoader *Loader
	validator    *Validator
	appConfig    *AppConfig
}

func NewConfigManager(env string, configPath string) *ConfigManager {
	return &ConfigManager{
		configLoader: NewLoader(env, configPath),
		validator:    NewValidator(),
	}
}

// SetBizConfig sets the project config pointer; call before LoadConfig.
func (cf *ConfigManager) SetBizConfig(b any) {
	if cf != nil && cf.configLoader != nil {
		cf.configLoader.SetBizConfig(b)
	}
}

// BizConfig returns the raw biz config pointer.
func (cf *ConfigManager) BizConfig() any {
	if cf == nil || cf.appConfig == nil {
		return nil
	}
	return cf.appConfig.BizConfig
}

func (cf *ConfigManager) GetConfig() *AppConfig { return cf.appConfig }

func (cf *ConfigManager) LoadConfig() error {
	if err := cf.validator.validateConfigFilePath(cf.configLoader.env, cf.configLoader.configPath); err != nil {
		return err
	}
	config, err := cf.configLoader.LoadConfig()
	if err != nil {
		return err
	}
	if err = cf.validator.ValidateAppConfig(config); err != nil {
		return err
	}
	cf.appConfig = config
	return nil
}
