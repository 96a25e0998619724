package hospitals

import (
	"context"

	"emr-gateway-service/internal/app/contracts"
	"emr-gateway-service/internal/app/models"
	"emr-gateway-service/internal/pkg/constvars"
	"emr-gateway-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type credentialResolver struct {
	CredentialRepository contracts.HospitalCredentialRepository
	Decryptor            contracts.SecretDecryptor
	Log                  *zap.Logger
}

func NewCredentialResolver(
	credentialRepository contracts.HospitalCredentialRepository,
	decryptor contracts.SecretDecryptor,
	logger *zap.Logger,
) contracts.CredentialResolver {
	return &credentialResolver{
		CredentialRepository: credentialRepository,
		Decryptor:            decryptor,
		Log:                  logger,
	}
}

// Resolve loads the active credential for a hospital and recovers its
// secret material. A credential whose secretFormat is not recognized is
// treated as misconfigured and never used as-is.
func (uc *credentialResolver) Resolve(ctx context.Context, hospitalID string) (*models.ResolvedCredential, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	credential, err := uc.CredentialRepository.FindActiveByHospitalID(ctx, hospitalID)
	if err != nil {
		return nil, err
	}
	if credential == nil {
		uc.Log.Warn("credentialResolver.Resolve no active credential",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingHospitalIDKey, hospitalID),
		)
		return nil, exceptions.ErrHospitalNotConfigured(hospitalID)
	}

	resolved := &models.ResolvedCredential{
		HospitalID: credential.HospitalID,
		Vendor:     credential.Vendor,
		BaseURL:    credential.BaseURL,
		ClientID:   credential.ClientID,
		AuthMethod: credential.AuthMethod,
		Scopes:     credential.Scopes,
	}

	switch credential.SecretFormat {
	case constvars.SecretFormatAESGCM:
		if credential.EncryptedClientSecret != "" {
			resolved.ClientSecret, err = uc.Decryptor.Decrypt(credential.EncryptedClientSecret)
			if err != nil {
				return nil, exceptions.ErrDecryptSecret(err, "client secret")
			}
		}
		if credential.EncryptedPrivateKey != "" {
			resolved.PrivateKey, err = uc.Decryptor.Decrypt(credential.EncryptedPrivateKey)
			if err != nil {
				return nil, exceptions.ErrDecryptSecret(err, "private key")
			}
		}
	case constvars.SecretFormatPlaintext:
		resolved.ClientSecret = credential.EncryptedClientSecret
		resolved.PrivateKey = credential.EncryptedPrivateKey
	default:
		return nil, exceptions.ErrUnknownSecretFormat(hospitalID, credential.SecretFormat)
	}

	return resolved, nil
}
