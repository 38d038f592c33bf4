package csharp_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/scomposer/inspector/csharp"
	"github.com/viant/scomposer/inspector/graph"
)

const programSource = `using System;
using Sandbox.ModAPI.Ingame;
using IngameScript.Utils;

namespace IngameScript
{
    partial class Program : MyGridProgram
    {
        // number of runs
        int counter = 0; // reset on recompile

        public Program()
        {
            Runtime.UpdateFrequency = UpdateFrequency.Update100;
        }

        public void Main(string argument, UpdateType updateSource)
        {
            counter++;
        }
    }
}
`

func TestInspector_InspectSource(t *testing.T) {
	inspector := csharp.NewInspector(nil)
	file, err := inspector.InspectSource([]byte(programSource))
	require.NoError(t, err)
	assert.False(t, file.HasErrors)

	var imports []string
	for _, imp := range file.Imports {
		imports = append(imports, imp.Name)
	}
	assert.Equal(t, []string{"System", "Sandbox.ModAPI.Ingame", "IngameScript.Utils"}, imports)

	require.Len(t, file.Sites, 1)
	site := file.Sites[0]
	assert.Equal(t, "IngameScript", site.Namespace)
	assert.Len(t, site.Imports, 3)
	require.Len(t, site.Types, 1)
	require.Len(t, site.Members, 1)

	program := site.Types[0]
	assert.Equal(t, "Program", program.Name)
	assert.Equal(t, "IngameScript.Program", program.QualifiedName())
	assert.Equal(t, graph.KindClass, program.Kind)
	assert.True(t, program.IsPartial)
	assert.Equal(t, []string{"MyGridProgram"}, program.Bases)

	var names []string
	for _, member := range program.Members {
		names = append(names, member.Name)
	}
	assert.Equal(t, []string{"counter", "Program", "Main"}, names)

	counter := program.Members[0]
	assert.Equal(t, "// number of runs\n        int counter = 0; // reset on recompile", counter.Text)
	assert.Equal(t, "        ", counter.Indent)
	assert.True(t, strings.HasPrefix(program.Members[2].Text, "public void Main("))
}

func TestInspector_Namespaces(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		namespaces []string
		check      func(t *testing.T, file *graph.File)
	}{
		{
			name: "nested namespace with block using",
			source: `namespace Outer
{
    using Lib;

    class A {}

    namespace Inner
    {
        class B {}
    }
}
`,
			namespaces: []string{"Outer", "Outer.Inner"},
			check: func(t *testing.T, file *graph.File) {
				outer := file.Sites[0]
				require.Len(t, outer.Imports, 1)
				assert.Equal(t, "Lib", outer.Imports[0].Name)
				assert.Equal(t, "Outer", outer.Imports[0].Scope)
				require.Len(t, outer.Members, 1)
				assert.Equal(t, "A", outer.Members[0].Name)

				inner := file.Sites[1]
				require.Len(t, inner.Imports, 1)
				assert.Equal(t, "Lib", inner.Imports[0].Name)
				require.Len(t, inner.Members, 1)
				assert.Equal(t, "class B {}", inner.Members[0].Text)
			},
		},
		{
			name: "static and alias usings",
			source: `using static System.Math;
using Vec = VRageMath.Vector3D;

namespace Tools
{
    struct Point {}
}
`,
			namespaces: []string{"Tools"},
			check: func(t *testing.T, file *graph.File) {
				require.Len(t, file.Imports, 2)
				assert.True(t, file.Imports[0].Static)
				assert.Equal(t, "System.Math", file.Imports[0].Name)
				assert.Equal(t, "Vec", file.Imports[1].Alias)
				assert.Equal(t, "VRageMath.Vector3D", file.Imports[1].Name)
				require.Len(t, file.Sites[0].Types, 1)
				assert.Equal(t, graph.KindStruct, file.Sites[0].Types[0].Kind)
			},
		},
		{
			name: "file scoped namespace",
			source: `using Lib;

namespace Scripts.Core;

class Helper
{
    public static int Twice(int v) => v * 2;
}
`,
			namespaces: []string{"Scripts.Core"},
			check: func(t *testing.T, file *graph.File) {
				site := file.Sites[0]
				require.Len(t, site.Imports, 1)
				require.Len(t, site.Types, 1)
				assert.Equal(t, "Helper", site.Types[0].Name)
				require.Len(t, site.Types[0].Members, 1)
				assert.Equal(t, "Twice", site.Types[0].Members[0].Name)
			},
		},
	}
	inspector := csharp.NewInspector(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := inspector.InspectSource([]byte(tt.source))
			require.NoError(t, err)
			var namespaces []string
			for _, site := range file.Sites {
				namespaces = append(namespaces, site.Namespace)
			}
			require.Equal(t, tt.namespaces, namespaces)
			tt.check(t, file)
		})
	}
}

func TestInspector_Literals(t *testing.T) {
	source := "namespace A\n{\n    class Program\n    {\n        string banner = @\"line one\n        indented line   \n\";\n        string name = \"single\";\n    }\n}\n"
	file, err := csharp.NewInspector(nil).InspectSource([]byte(source))
	require.NoError(t, err)
	require.Len(t, file.Sites, 1)
	require.Len(t, file.Sites[0].Types, 1)

	members := file.Sites[0].Types[0].Members
	require.Len(t, members, 2)
	require.Len(t, members[0].Literals, 1)
	span := members[0].Literals[0]
	assert.Equal(t, "@\"line one\n        indented line   \n\"", members[0].Text[span.Start:span.End])
	assert.Empty(t, members[1].Literals)
}

func TestInspector_InspectProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Script.csproj", `<Project Sdk="Microsoft.NET.Sdk"></Project>`)
	writeFile(t, root, "Program.cs", programSource)
	writeFile(t, root, "Utils/Counter.cs", "namespace IngameScript.Utils\n{\n    class Counter {}\n}\n")
	writeFile(t, root, "obj/Generated.cs", "namespace Generated\n{\n    class Skipped {}\n}\n")

	inspector := csharp.NewInspector(nil)
	project, err := inspector.InspectProject(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, "Script", project.Name)
	assert.Len(t, project.Files, 2)

	var declared []string
	for _, ns := range project.DeclaredNamespaces() {
		declared = append(declared, ns.Name)
	}
	assert.Equal(t, []string{"IngameScript", "IngameScript.Utils"}, declared)

	symbol := project.Resolve(&graph.Import{Name: "IngameScript.Utils"})
	require.NotNil(t, symbol)
	assert.Equal(t, "IngameScript.Utils", symbol.SymbolName())
}

func TestInspector_InspectProjectCache(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Script.csproj", `<Project Sdk="Microsoft.NET.Sdk"></Project>`)
	writeFile(t, root, "Program.cs", programSource)
	writeFile(t, root, "Utils/Counter.cs", "namespace IngameScript.Utils\n{\n    class Counter {}\n}\n")

	inspector := csharp.NewInspector(nil)
	first, err := inspector.InspectProject(context.Background(), root)
	require.NoError(t, err)
	second, err := inspector.InspectProject(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, first.Files, 2)
	require.Len(t, second.Files, 2)
	assert.Same(t, first.Files[0], second.Files[0])
	assert.Same(t, first.Files[1], second.Files[1])

	writeFile(t, root, "Utils/Counter.cs", "namespace IngameScript.Utils\n{\n    class Counter { int value; }\n}\n")
	third, err := inspector.InspectProject(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, third.Files, 2)
	assert.Same(t, first.Files[0], third.Files[0])
	assert.NotSame(t, first.Files[1], third.Files[1])
	assert.NotEqual(t, first.Files[1].Hash, third.Files[1].Hash)

	uncached := csharp.NewInspector(&graph.Config{KeepComments: true})
	fourth, err := uncached.InspectProject(context.Background(), root)
	require.NoError(t, err)
	fifth, err := uncached.InspectProject(context.Background(), root)
	require.NoError(t, err)
	assert.NotSame(t, fourth.Files[0], fifth.Files[0])
}

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
