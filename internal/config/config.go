package config

import "os"

// Config — вся конфигурация процесса из окружения.
// Читается один раз на старте, дальше только передаётся по ссылке.
type Config struct {
	Host string
	Port string

	// APP_ENV=production — скрываем детали ошибок от клиента
	Env string

	SessionSecret string

	UploadDir      string
	LogDir         string
	AdminUsersFile string

	Storage StorageConfig
}

// StorageConfig — креды и адрес S3-совместимого объектного хранилища.
// Пара ключей принимается в двух вариантах написания (TOS_* и STORAGE_*),
// потому что у разных облаков переменные называются по-разному.
type StorageConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Endpoint  string
	Region    string
}

func Load() Config {
	return Config{
		Host:           getenv("HOST", "0.0.0.0"),
		Port:           getenv("PORT", "8000"),
		Env:            os.Getenv("APP_ENV"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		UploadDir:      getenv("UPLOAD_DIR", "uploads"),
		LogDir:         getenv("LOG_DIR", "logs"),
		AdminUsersFile: getenv("ADMIN_USERS_FILE", "adminUsers.json"),
		Storage: StorageConfig{
			AccessKey: first(os.Getenv("TOS_ACCESS_KEY"), os.Getenv("STORAGE_ACCESS_KEY")),
			SecretKey: first(os.Getenv("TOS_SECRET_KEY"), os.Getenv("STORAGE_SECRET_KEY")),
			Bucket:    getenv("STORAGE_BUCKET", "photocollect"),
			Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
			Region:    getenv("STORAGE_REGION", "us-east-1"),
		},
	}
}

// UseObjectStore — объектное хранилище включается только когда обе
// креды заданы. Выбор фиксируется на весь жизненный цикл процесса.
func (c Config) UseObjectStore() bool {
	return c.Storage.AccessKey != "" && c.Storage.SecretKey != ""
}

func (c Config) Production() bool {
	return c.Env == "production"
}

func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
