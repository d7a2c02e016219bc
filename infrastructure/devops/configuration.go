package devops

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

type AppConfig struct {
	DSN              string `yaml:"dsn"`
	SigningSecret    string `yaml:"signingSecret"` // base64
	AttachmentBucket string `yaml:"attachmentBucket"`
	ReportSender     string `yaml:"reportSender"`
	Timezone         string `yaml:"timezone"`
	ShiftStartHour   int    `yaml:"shiftStartHour"`
	ShiftEndHour     int    `yaml:"shiftEndHour"`
	MaxConnections   int    `yaml:"maxConnections"`
}

var (
	once    sync.Once
	loaded  *AppConfig
	loadErr error
)

// LoadAppConfig reads the application config once, from the SSM parameter
// named by PEOPLEBASE_CONFIG_PARAM (YAML, decrypted), falling back to plain
// env vars when the parameter name is unset (local development).
func LoadAppConfig(ctx context.Context) (*AppConfig, error) {
	once.Do(func() {
		paramName := os.Getenv("PEOPLEBASE_CONFIG_PARAM")
		if paramName == "" {
			loaded = configFromEnv()
			return
		}

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

		parsed := configFromEnv()
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), parsed); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		loaded = parsed
	})

	return loaded, loadErr
}

func configFromEnv() *AppConfig {
	c := &AppConfig{
		DSN:              os.Getenv("DSN"),
		SigningSecret:    os.Getenv("PEOPLEBASE_SIGNING_SECRET"),
		AttachmentBucket: os.Getenv("PEOPLEBASE_ATTACHMENT_BUCKET"),
		ReportSender:     os.Getenv("PEOPLEBASE_REPORT_SENDER"),
		Timezone:         os.Getenv("PEOPLEBASE_TZ"),
		ShiftStartHour:   10,
		ShiftEndHour:     19,
		MaxConnections:   10,
	}
	if v, err := strconv.Atoi(os.Getenv("PEOPLEBASE_SHIFT_START")); err == nil {
		c.ShiftStartHour = v
	}
	if v, err := strconv.Atoi(os.Getenv("PEOPLEBASE_SHIFT_END")); err == nil {
		c.ShiftEndHour = v
	}
	return c
}
