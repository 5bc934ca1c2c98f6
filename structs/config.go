package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Storage   *StorageConfig
	Cache     *CacheConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string        // Vitrine
	Environment    string        // development, production
	Port           string        // :8082
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
}

// StorageConfig configures the local blob store backing uploaded images.
type StorageConfig struct {
	BasePath       string // directory holding uploaded blobs
	PublicBaseURL  string // origin used to build public image URLs
	MaxUploadBytes int64  // per-file cap for image uploads
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DefaultTTL   time.Duration
	ListTTL      time.Duration
}

type RateLimitConfig struct {
	Enabled       bool
	GeneralLimit  int
	GeneralWindow time.Duration
	WriteLimit    int
	WriteWindow   time.Duration
}
