package config

type PushConfig struct {
	FCMCredentialsFile string `yaml:"fcm_credentials_file"`
	FCMProjectID       string `yaml:"fcm_project_id"`
}

func loadPushConfig() *PushConfig {
	return &PushConfig{
		FCMCredentialsFile: getEnv("FCM_CREDENTIALS_FILE", ""),
		FCMProjectID:       getEnv("FCM_PROJECT_ID", ""),
	}
}

func (c *PushConfig) Configured() bool {
	return c.FCMCredentialsFile != ""
}
