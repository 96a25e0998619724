package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		RabbitMQ RabbitMQ
		Minio    Minio
		Logger   Logger
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
)

type (
	InternalConfig struct {
		App     App
		JWT     JWT
		EMR     EMR
		Secrets Secrets
		Minio   AppMinio
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Address                   string
		EndpointPrefix            string
		MaxRequests               int
		ShutdownTimeout           int
		MaxTimeRequestsPerSeconds int
	}

	JWT struct {
		Secret string
	}

	EMR struct {
		RequestTimeoutInSeconds    int
		AssertionLifetimeInSeconds int
	}

	// Secrets feeds the AES key derivation for stored credential material.
	Secrets struct {
		MasterKey string
		Salt      string
	}

	AppMinio struct {
		BucketName                          string
		PreSignedUrlObjectExpiryTimeInHours int
	}
)
