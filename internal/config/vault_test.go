package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	strings map[string]string
	err     error
}

func (f *fakeSecrets) GetStringSecret(path, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	value, ok := f.strings[path+"#"+key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in secret %s", key, path)
	}
	return value, nil
}

func (f *fakeSecrets) GetStringSliceSecret(path, key string) ([]string, error) {
	value, err := f.GetStringSecret(path, key)
	if err != nil {
		return nil, err
	}
	return splitAndTrim(value), nil
}

func TestParseVersionValue(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    int64
		wantErr bool
	}{
		{"int64", int64(3), 3, false},
		{"float64", float64(4), 4, false},
		{"json number", json.Number("5"), 5, false},
		{"string", "6", 6, false},
		{"bad string", "six", 0, true},
		{"bool", true, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVersionValue(tt.raw, "secret/data/test")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKVv2(t *testing.T) {
	secret, err := parseKVv2(map[string]any{
		"data":     map[string]any{"api_key": "abc"},
		"metadata": map[string]any{"version": json.Number("2")},
	}, "secret/data/ai")
	require.NoError(t, err)
	assert.Equal(t, int64(2), secret.Version)

	value, err := stringField(secret, "secret/data/ai", "api_key")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)

	_, err = stringField(secret, "secret/data/ai", "missing")
	assert.Error(t, err)

	_, err = parseKVv2(map[string]any{"api_key": "abc"}, "secret/ai")
	assert.ErrorContains(t, err, "not in KVv2 format")
}

func TestResolveVaultToken(t *testing.T) {
	t.Run("inline token wins", func(t *testing.T) {
		token, err := resolveVaultToken(VaultConfig{Token: "inline", TokenFile: "/nonexistent"})
		require.NoError(t, err)
		assert.Equal(t, "inline", token)
	})

	t.Run("token file is trimmed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("from-file\n"), 0o600))
		token, err := resolveVaultToken(VaultConfig{TokenFile: path})
		require.NoError(t, err)
		assert.Equal(t, "from-file", token)
	})

	t.Run("no token", func(t *testing.T) {
		_, err := resolveVaultToken(VaultConfig{})
		assert.Error(t, err)
	})
}

func TestApplyVaultSecretsDisabled(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, ApplyVaultSecrets(cfg, nil))

	client, err := NewVaultClient(VaultConfig{}, nil)
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestLoadAllSecretsFromVault(t *testing.T) {
	cfg := validConfig()
	cfg.AI.Provider = ProviderGemini
	cfg.Vault = VaultConfig{
		Enabled: true,
		Secrets: VaultSecrets{APIKeys: "secret/data/server", AIKey: "secret/data/ai"},
	}

	client := &fakeSecrets{strings: map[string]string{
		"secret/data/server#keys": "k1, k2",
		"secret/data/ai#api_key":  "gemini-key",
	}}
	require.NoError(t, loadAllSecretsFromVault(client, cfg, nil))

	assert.Equal(t, []string{"k1", "k2"}, cfg.Server.APIKeys)
	assert.Equal(t, "gemini-key", cfg.AI.APIKey)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAllSecretsFromVaultFailure(t *testing.T) {
	cfg := validConfig()
	cfg.Vault.Secrets.AIKey = "secret/data/ai"

	err := loadAllSecretsFromVault(&fakeSecrets{err: fmt.Errorf("permission denied")}, cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load AI API key from vault")
	assert.Empty(t, cfg.AI.APIKey)
}
