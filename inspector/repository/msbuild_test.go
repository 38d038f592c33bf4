package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/scomposer/inspector/repository"
)

func TestParseBuildSettings(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		expect    *repository.BuildSettings
		expectErr bool
	}{
		{
			name:    "sdk project",
			content: `<Project Sdk="Microsoft.NET.Sdk"><PropertyGroup><RootNamespace>IngameScript</RootNamespace></PropertyGroup></Project>`,
			expect: &repository.BuildSettings{
				SDK:                "Microsoft.NET.Sdk",
				RootNamespace:      "IngameScript",
				DefaultCompileItem: true,
			},
		},
		{
			name: "default items disabled",
			content: `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup><EnableDefaultCompileItems>false</EnableDefaultCompileItems></PropertyGroup>
  <ItemGroup><Compile Include="Program.cs;Lib\*.cs;$(Shared)\X.cs" /></ItemGroup>
</Project>`,
			expect: &repository.BuildSettings{
				SDK:     "Microsoft.NET.Sdk",
				Include: []string{"Program.cs", "Lib/*.cs"},
			},
		},
		{
			name: "legacy project",
			content: `<Project ToolsVersion="15.0" xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup><AssemblyName>Script</AssemblyName></PropertyGroup>
  <ItemGroup><Compile Include=".\Program.cs" /><Compile Remove="Old.cs" /></ItemGroup>
</Project>`,
			expect: &repository.BuildSettings{
				AssemblyName: "Script",
				Include:      []string{"Program.cs"},
				Remove:       []string{"Old.cs"},
			},
		},
		{
			name:      "invalid xml",
			content:   `<Project`,
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := repository.ParseBuildSettings([]byte(tt.content))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expect, settings)
		})
	}
}

func TestPatterns_Match(t *testing.T) {
	patterns, err := repository.NewPatterns("**/*.cs", "Legacy/", "Generated/**")
	require.NoError(t, err)
	tests := []struct {
		path   string
		expect bool
	}{
		{path: "Program.cs", expect: true},
		{path: "Utils/Counter.cs", expect: true},
		{path: "Legacy/notes.txt", expect: true},
		{path: "Generated/deep/file.txt", expect: true},
		{path: "readme.md", expect: false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, patterns.Match(tt.path), tt.path)
	}

	var empty *repository.Patterns
	assert.False(t, empty.Match("Program.cs"))
	assert.Equal(t, 0, empty.Len())
}
