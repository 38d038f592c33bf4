package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/scomposer/inspector/graph"
)

func newProject() *graph.Project {
	project := &graph.Project{}
	first := &graph.File{Path: "a.cs"}
	first.AddSite(&graph.Site{Namespace: "Lib.Core", Types: []*graph.Type{
		{Name: "Helpers", Kind: graph.KindClass, Namespace: "Lib.Core", IsPartial: true,
			Members: []*graph.Member{{Name: "One"}}},
	}})
	first.AddSite(&graph.Site{Namespace: "App"})
	second := &graph.File{Path: "b.cs"}
	second.AddSite(&graph.Site{Namespace: "Lib.Core", Types: []*graph.Type{
		{Name: "Helpers", Kind: graph.KindClass, Namespace: "Lib.Core", IsPartial: true,
			Bases: []string{"global::Sandbox.Base<int>"}, Members: []*graph.Member{{Name: "Two"}}},
	}})
	second.AddSite(&graph.Site{Namespace: "Lib"})
	project.AddFile(first)
	project.AddFile(second)
	project.Init()
	return project
}

func TestProject_DeclaredNamespaces(t *testing.T) {
	project := newProject()
	var names []string
	for _, ns := range project.DeclaredNamespaces() {
		names = append(names, ns.Name)
	}
	assert.Equal(t, []string{"Lib.Core", "App", "Lib"}, names)

	core := project.Namespace("Lib.Core")
	require.NotNil(t, core)
	assert.Len(t, core.Sites, 2)
	assert.Len(t, core.Types(), 2)
}

func TestProject_Resolve(t *testing.T) {
	project := &graph.Project{}
	file := &graph.File{Path: "a.cs"}
	file.AddSite(&graph.Site{Namespace: "Outer.Inner"})
	file.AddSite(&graph.Site{Namespace: "Tools", Types: []*graph.Type{{Name: "Math", Kind: graph.KindClass, Namespace: "Tools"}}})
	project.AddFile(file)

	tests := []struct {
		name   string
		imp    *graph.Import
		expect string
	}{
		{name: "qualified namespace", imp: &graph.Import{Name: "Outer.Inner"}, expect: "Outer.Inner"},
		{name: "implicit parent", imp: &graph.Import{Name: "Outer"}, expect: "Outer"},
		{name: "relative to scope", imp: &graph.Import{Name: "Inner", Scope: "Outer"}, expect: "Outer.Inner"},
		{name: "relative outside scope", imp: &graph.Import{Name: "Inner"}, expect: ""},
		{name: "global alias", imp: &graph.Import{Name: "global::Tools", Scope: "Outer"}, expect: "Tools"},
		{name: "external", imp: &graph.Import{Name: "System"}, expect: ""},
		{name: "static type", imp: &graph.Import{Name: "Tools.Math", Static: true}, expect: "Tools.Math"},
		{name: "static namespace", imp: &graph.Import{Name: "Tools", Static: true}, expect: ""},
		{name: "alias to type", imp: &graph.Import{Name: "Tools.Math", Alias: "M"}, expect: "Tools.Math"},
		{name: "type without static", imp: &graph.Import{Name: "Tools.Math"}, expect: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbol := project.Resolve(tt.imp)
			if tt.expect == "" {
				assert.Nil(t, symbol)
				return
			}
			require.NotNil(t, symbol)
			assert.Equal(t, tt.expect, symbol.SymbolName())
		})
	}

	outer := project.Namespace("Outer")
	require.NotNil(t, outer)
	assert.False(t, outer.Declared())
	assert.Len(t, project.DeclaredNamespaces(), 2)
}

func TestProject_TypeMembers(t *testing.T) {
	project := newProject()
	helpers := project.LookupType("Lib.Core.Helpers")
	require.Len(t, helpers, 2)

	var names []string
	for _, member := range project.TypeMembers(helpers[0]) {
		names = append(names, member.Name)
	}
	assert.Equal(t, []string{"One", "Two"}, names)
	assert.Equal(t, "Base", project.BaseType(helpers[0]))
}

func TestSimpleName(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{input: "MyGridProgram", expect: "MyGridProgram"},
		{input: "Sandbox.ModAPI.Ingame.MyGridProgram", expect: "MyGridProgram"},
		{input: "global::Sandbox.MyGridProgram", expect: "MyGridProgram"},
		{input: "List<Dictionary<string, int>>", expect: "List"},
		{input: " Base ", expect: "Base"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expect, graph.SimpleName(tt.input), tt.input)
	}
}

func TestFingerprint(t *testing.T) {
	first, err := graph.Fingerprint([]byte("class A {}"))
	require.NoError(t, err)
	second, err := graph.Fingerprint([]byte("class A {}"))
	require.NoError(t, err)
	other, err := graph.Fingerprint([]byte("class B {}"))
	require.NoError(t, err)
	assert.Len(t, first, 16)
	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}
