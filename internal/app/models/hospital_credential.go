package models

import "time"

// HospitalCredential is the stored EMR connection for one hospital. Secrets
// are kept encrypted at rest; the resolver decrypts them into a
// ResolvedCredential that never touches the database.
type HospitalCredential struct {
	ID                    string    `bson:"_id,omitempty"`
	HospitalID            string    `bson:"hospitalId"`
	Vendor                string    `bson:"vendor"`
	BaseURL               string    `bson:"baseUrl"`
	ClientID              string    `bson:"clientId"`
	AuthMethod            string    `bson:"authMethod"`
	Scopes                string    `bson:"scopes,omitempty"`
	EncryptedClientSecret string    `bson:"encryptedClientSecret,omitempty"`
	EncryptedPrivateKey   string    `bson:"encryptedPrivateKey,omitempty"`
	SecretFormat          string    `bson:"secretFormat"`
	Active                bool      `bson:"active"`
	HealthStatus          string    `bson:"healthStatus,omitempty"`
	LastHealthCheckAt     time.Time `bson:"lastHealthCheckAt,omitempty"`
	CreatedAt             time.Time `bson:"createdAt,omitempty"`
	UpdatedAt             time.Time `bson:"updatedAt,omitempty"`
}

// ResolvedCredential carries the decrypted secret material for one request.
type ResolvedCredential struct {
	HospitalID   string
	Vendor       string
	BaseURL      string
	ClientID     string
	AuthMethod   string
	Scopes       string
	ClientSecret string
	PrivateKey   string
}
