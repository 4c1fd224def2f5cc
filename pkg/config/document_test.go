package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_LegacyKeyAliases(t *testing.T) {
	data := []byte(`{"Services":[{"Name":"Qwen","Url":"https://chat.qwen.ai","IsVisible":false,"Order":7,"Width":0.5}]}`)

	cfg, err := Decode(data, FormatJSON)
	require.NoError(t, err)
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, ServiceRecord{
		Name:     "Qwen",
		Endpoint: "https://chat.qwen.ai",
		Visible:  false,
		Order:    7,
		Width:    0.5,
	}, cfg.Services[0])
}

func TestDecode_MissingFieldsTakeRecordDefaults(t *testing.T) {
	cfg, err := Decode([]byte(`{"services":[{"name":"Claude","order":1}]}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, cfg.Services, 1)
	assert.True(t, cfg.Services[0].Visible)
	assert.Equal(t, 1.0, cfg.Services[0].Width)
	assert.Equal(t, "", cfg.Services[0].Endpoint)
}

func TestDecode_ClampsNegativeWidth(t *testing.T) {
	cfg, err := Decode([]byte(`{"services":[{"name":"Claude","width":-3}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Services[0].Width)
}

func TestDecode_NonFiniteWidthFallsBackToDefault(t *testing.T) {
	data := []byte(`
services:
  - name: ChatGPT
    width: .nan
  - name: Claude
    width: .inf
  - name: DeepSeek
    width: -.inf
`)
	cfg, err := Decode(data, FormatYAML)
	require.NoError(t, err)
	require.Len(t, cfg.Services, 3)
	assert.Equal(t, 1.0, cfg.Services[0].Width)
	assert.Equal(t, 1.0, cfg.Services[1].Width)
	assert.Equal(t, 1.0, cfg.Services[2].Width)

	_, err = Encode(cfg, FormatJSON)
	assert.NoError(t, err, "decoded widths stay encodable")
}

func TestDecode_EmptyListIsKept(t *testing.T) {
	cfg, err := Decode([]byte(`{"services":[]}`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Services)
	assert.Empty(t, cfg.Services)
	assert.Len(t, Migrate(cfg).Services, SlotCount)
}

func TestDecode_NoServicesKeepsBrowserSection(t *testing.T) {
	cfg, err := Decode([]byte(`{"browser":{"engine":"rod","headless":true}}`), FormatJSON)
	require.NoError(t, err)
	assert.Len(t, cfg.Services, SlotCount)
	assert.Equal(t, EngineRod, cfg.Browser.Engine)
	require.NotNil(t, cfg.Browser.Headless)
	assert.True(t, *cfg.Browser.Headless)
}

func TestDecode_YAML(t *testing.T) {
	data := []byte(`
version: 2
services:
  - name: Grok
    endpoint: https://grok.com
    visible: false
    order: 0
    width: 1.5
`)
	cfg, err := Decode(data, FormatYAML)
	require.NoError(t, err)
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "Grok", cfg.Services[0].Name)
	assert.False(t, cfg.Services[0].Visible)
	assert.Equal(t, 1.5, cfg.Services[0].Width)
}

func TestDecodeEncode_UnsupportedFormat(t *testing.T) {
	_, err := Decode([]byte(`{}`), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Encode(DefaultConfiguration(), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("/x/settings.json"))
	assert.Equal(t, FormatJSON, FormatForPath("/x/settings"))
	assert.Equal(t, FormatYAML, FormatForPath("/x/settings.YML"))
	assert.Equal(t, FormatYAML, FormatForPath("settings.yaml"))
}
