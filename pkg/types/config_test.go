// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConvertConfig(t *testing.T) {
	cfg := DefaultConvertConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{".md"}, cfg.Extensions)
	assert.Equal(t, LinkHyperlink, cfg.LinkStyle)
	assert.True(t, cfg.NormalizeText)
	assert.False(t, cfg.Recursive)
	assert.False(t, cfg.TitleFromFrontmatter)
}

func TestConvertConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConvertConfig)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *ConvertConfig) {},
		},
		{
			name:   "extra extension",
			mutate: func(c *ConvertConfig) { c.Extensions = []string{".md", ".markdown"} },
		},
		{
			name:   "text link style",
			mutate: func(c *ConvertConfig) { c.LinkStyle = LinkText },
		},
		{
			name:    "extension without dot",
			mutate:  func(c *ConvertConfig) { c.Extensions = []string{"md"} },
			wantErr: true,
		},
		{
			name:    "bare dot extension",
			mutate:  func(c *ConvertConfig) { c.Extensions = []string{"."} },
			wantErr: true,
		},
		{
			name:    "no extensions",
			mutate:  func(c *ConvertConfig) { c.Extensions = nil },
			wantErr: true,
		},
		{
			name:    "unknown link style",
			mutate:  func(c *ConvertConfig) { c.LinkStyle = "footnote" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConvertConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatchesExtension(t *testing.T) {
	cfg := DefaultConvertConfig()

	assert.True(t, cfg.MatchesExtension("notes.md"))
	assert.True(t, cfg.MatchesExtension("NOTES.MD"))
	assert.True(t, cfg.MatchesExtension("dir/readme.Md"))
	assert.False(t, cfg.MatchesExtension("notes.txt"))
	assert.False(t, cfg.MatchesExtension("md"))

	cfg.Extensions = []string{".md", ".markdown"}
	assert.True(t, cfg.MatchesExtension("a.MARKDOWN"))
	assert.False(t, cfg.MatchesExtension("a.mark"))
}
