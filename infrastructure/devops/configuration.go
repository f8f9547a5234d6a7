package devops

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/atlashr/atlas/integrations/fingertec"
)

var (
	once    sync.Once
	cached  *fingertec.Config
	loadErr error
)

// LoadDeviceConfig fetches the FingerTec integration config as a YAML
// document from the named SSM parameter. Loaded once per process.
func LoadDeviceConfig(ctx context.Context, paramName string) (*fingertec.Config, error) {
	once.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String(paramName),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed fingertec.Config
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}
		if err := parsed.Validate(); err != nil {
			loadErr = err
			return
		}

		cached = &parsed
	})

	return cached, loadErr
}

// ResolveDeviceConfig prefers the SSM parameter named by FINGERTEC_SSM_PARAMETER
// and falls back to plain FINGERTEC_* environment variables.
func ResolveDeviceConfig(ctx context.Context) (*fingertec.Config, error) {
	if param := os.Getenv("FINGERTEC_SSM_PARAMETER"); param != "" {
		return LoadDeviceConfig(ctx, param)
	}
	cfg := fingertec.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
