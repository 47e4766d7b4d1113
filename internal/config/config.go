package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database `envPrefix:"DATABASE_"`

	Auth       Auth       `envPrefix:"AUTH_"`
	Media      Media      `envPrefix:"MEDIA_"`
	SMTP       SMTP       `envPrefix:"SMTP_"`
	Razorpay   Razorpay   `envPrefix:"RAZORPAY_"`
	Upload     Upload     `envPrefix:"UPLOAD_"`
	Storefront Storefront `envPrefix:"STOREFRONT_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsProduction() bool {
	return e.Name == "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"5000"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite, mysql, postgres
	URL    string `env:"URL" envDefault:"pageturn.db"`
}

type Auth struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}

type Media struct {
	Provider   string     `env:"PROVIDER" envDefault:"cloudinary"` // cloudinary, s3
	Folder     string     `env:"FOLDER" envDefault:"pageturn_books"`
	Cloudinary Cloudinary `envPrefix:"CLOUDINARY_"`
	S3         S3         `envPrefix:"S3_"`
}

type Cloudinary struct {
	CloudName string `env:"CLOUD_NAME"`
	APIKey    string `env:"API_KEY"`
	APISecret string `env:"API_SECRET"`
}

type S3 struct {
	Region          string `env:"REGION" envDefault:"us-east-1"`
	Bucket          string `env:"BUCKET"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

type SMTP struct {
	Host     string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"PageTurn Admin"`
}

type Razorpay struct {
	KeyID     string `env:"KEY_ID"`
	KeySecret string `env:"KEY_SECRET"`
	Currency  string `env:"CURRENCY" envDefault:"INR"`
}

type Upload struct {
	MaxBytes int64  `env:"MAX_BYTES" envDefault:"5242880"` // 5 MiB
	TempDir  string `env:"TEMP_DIR"`
}

// Storefront holds what a checkout client needs to reach the API.
type Storefront struct {
	APIBaseURL     string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`
	UploadsBaseURL string `env:"UPLOADS_BASE_URL" envDefault:"http://localhost:5000"`
	GatewayKey     string `env:"GATEWAY_KEY"`
}
