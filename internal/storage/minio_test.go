package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"recondash/internal/config"
)

func TestNewMinIO(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.MinIOConfig
		wantErr string
	}{
		{"missing endpoint", config.MinIOConfig{}, "minio endpoint is required"},
		{"half credentials", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "k"}, "must be set together"},
		{"anonymous", config.MinIOConfig{Endpoint: "localhost:9000"}, ""},
		{"static credentials", config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", UseSSL: true}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(tt.cfg)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}
