package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"hookprobe/internal/platform/config"
)

var ErrEmptySecret = errors.New("webhook secret is empty")

// Provider resolves the shared webhook signing secret.
type Provider interface {
	Secret(ctx context.Context) (string, error)
}

type Static string

func (s Static) Secret(context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptySecret
	}
	return string(s), nil
}

// Env reads the secret from the named environment variable.
type Env string

func (e Env) Secret(context.Context) (string, error) {
	v := os.Getenv(string(e))
	if v == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrEmptySecret, string(e))
	}
	return v, nil
}

type secretValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWS loads the secret from AWS Secrets Manager. The secret string is
// either a JSON object holding JSONKey, or the raw secret when JSONKey is
// empty.
type AWS struct {
	client   secretValueGetter
	secretID string
	jsonKey  string
}

func NewAWS(ctx context.Context, cfg config.AWSConfig) (*AWS, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return newAWSWithClient(secretsmanager.NewFromConfig(awsCfg), cfg.SecretID, cfg.JSONKey), nil
}

func newAWSWithClient(client secretValueGetter, secretID, jsonKey string) *AWS {
	return &AWS{client: client, secretID: secretID, jsonKey: jsonKey}
}

func (a *AWS) Secret(ctx context.Context) (string, error) {
	out, err := a.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(a.secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %q: %w", a.secretID, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("%w: secret %q has no string value", ErrEmptySecret, a.secretID)
	}

	raw := *out.SecretString
	if a.jsonKey == "" {
		if raw == "" {
			return "", ErrEmptySecret
		}
		return raw, nil
	}

	var fields map[string]string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return "", fmt.Errorf("failed to decode secret %q: %w", a.secretID, err)
	}
	v := fields[a.jsonKey]
	if v == "" {
		return "", fmt.Errorf("%w: key %q missing in secret %q", ErrEmptySecret, a.jsonKey, a.secretID)
	}
	return v, nil
}

// FromConfig builds the provider selected by cfg.Source.
func FromConfig(ctx context.Context, cfg config.SecretConfig) (Provider, error) {
	switch strings.ToLower(cfg.Source) {
	case "static":
		return Static(cfg.Value), nil
	case "", "env":
		return Env(cfg.EnvVar), nil
	case "aws":
		return NewAWS(ctx, cfg.AWS)
	default:
		return nil, fmt.Errorf("unsupported secret source: %q (supported: static, env, aws)", cfg.Source)
	}
}
