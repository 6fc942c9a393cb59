package store

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"sessionkey/internal/domain"
)

var errSecretEmpty = errors.New("secret exists but holds no value")

// secretsAPI is the subset of *secretsmanager.Client the store uses.
type secretsAPI interface {
	GetSecretValue(
		ctx context.Context,
		in *secretsmanager.GetSecretValueInput,
		opts ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)
	PutSecretValue(
		ctx context.Context,
		in *secretsmanager.PutSecretValueInput,
		opts ...func(*secretsmanager.Options),
	) (*secretsmanager.PutSecretValueOutput, error)
	CreateSecret(
		ctx context.Context,
		in *secretsmanager.CreateSecretInput,
		opts ...func(*secretsmanager.Options),
	) (*secretsmanager.CreateSecretOutput, error)
}

// SecretsStore keeps each key as a binary secret named "<prefix>/<key>".
type SecretsStore struct {
	api    secretsAPI
	prefix string
}

// NewSecretsStore builds a SecretsStore using the default AWS configuration
// chain (environment variables, shared config, IAM role).
func NewSecretsStore(ctx context.Context, prefix string) (*SecretsStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, unavailable(err, "secrets store: load aws config")
	}
	return newSecretsStore(secretsmanager.NewFromConfig(cfg), prefix), nil
}

func newSecretsStore(api secretsAPI, prefix string) *SecretsStore {
	return &SecretsStore{api: api, prefix: strings.TrimSuffix(prefix, "/")}
}

// Get fetches the secret for key. A missing secret is reported as ok=false.
func (s *SecretsStore) Get(ctx context.Context, key domain.StoreKey) ([]byte, bool, error) {
	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.name(key)),
	})
	if isNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, unavailable(err, "secrets store: get "+key.String())
	}
	if out.SecretBinary != nil {
		return out.SecretBinary, true, nil
	}
	if out.SecretString != nil {
		return []byte(*out.SecretString), true, nil
	}
	return nil, false, nil
}

// Set writes a new secret version, creating the secret on first use.
func (s *SecretsStore) Set(ctx context.Context, key domain.StoreKey, value []byte) error {
	name := s.name(key)
	_, err := s.api.PutSecretValue(ctx, &secretsmanager.PutSecretValueInput{
		SecretId:     aws.String(name),
		SecretBinary: value,
	})
	if isNotFound(err) {
		_, err = s.api.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
			Name:         aws.String(name),
			SecretBinary: value,
		})
	}
	if err != nil {
		return unavailable(err, "secrets store: set "+key.String())
	}
	return nil
}

// SetIfAbsent creates the secret for key. If it already exists the current
// version is returned instead; existing secrets are never updated.
func (s *SecretsStore) SetIfAbsent(ctx context.Context, key domain.StoreKey, value []byte) ([]byte, error) {
	_, err := s.api.CreateSecret(ctx, &secretsmanager.CreateSecretInput{
		Name:         aws.String(s.name(key)),
		SecretBinary: value,
	})
	if err == nil {
		return value, nil
	}
	if !isExists(err) {
		return nil, unavailable(err, "secrets store: create "+key.String())
	}
	stored, ok, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, unavailable(errSecretEmpty, "secrets store: reread "+key.String())
	}
	return stored, nil
}

func (s *SecretsStore) name(key domain.StoreKey) string {
	if s.prefix == "" {
		return key.String()
	}
	return s.prefix + "/" + key.String()
}

func isNotFound(err error) bool {
	var nf *smtypes.ResourceNotFoundException
	return errors.As(err, &nf)
}

func isExists(err error) bool {
	var ex *smtypes.ResourceExistsException
	return errors.As(err, &ex)
}

// Compile-time assertion that SecretsStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*SecretsStore)(nil)
