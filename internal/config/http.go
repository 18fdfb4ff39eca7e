package config

import "time"

const (
	HCType        = "Content-Type"
	HETag         = "ETag"
	HCacheControl = "Cache-Control"

	CTypeCSS  = "text/css; charset=utf-8"
	CTypeHTML = "text/html; charset=utf-8"
	CTypeJSON = "application/json"
	CTypeText = "text/plain; charset=utf-8"
)

const (
	CookieAdminToken  = "blog_admin_token"
	CookieSyntaxTheme = "syntax-theme"

	SessionMaxAge = 24 * time.Hour
)

const (
	EnvConfigPath        = "CONFIG_PATH"
	EnvAdminPassword     = "ADMIN_PASSWORD"
	EnvJWTSecret         = "JWT_SECRET"
	EnvLogLevel          = "LOG_LEVEL"
	EnvContentDir        = "CONTENT_DIR"
	EnvPort              = "PORT"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"

	DefaultConfigPath = "config.yaml"
)
