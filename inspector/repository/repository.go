package repository

import "errors"

// ErrProjectNotFound indicates no single project file could be resolved from the input
var ErrProjectNotFound = errors.New("project file not found")

// ProjectExt is the project file extension
const ProjectExt = ".csproj"

// Project represents information about a detected project
type Project struct {
	RootPath    string         // Absolute path to the project root directory
	ProjectFile string         // Absolute path to the project file
	Type        string         // Type of project
	Name        string         // Name of the project (RootNamespace, AssemblyName or file name)
	Build       *BuildSettings // Compile item settings read from the project file
}

// BuildSettings represents the compile item portion of an MSBuild project
type BuildSettings struct {
	SDK                string   // Sdk attribute, empty for legacy projects
	RootNamespace      string   // RootNamespace property
	AssemblyName       string   // AssemblyName property
	DefaultCompileItem bool     // Whether **/*.cs is included implicitly
	Include            []string // Compile Include patterns, slash separated
	Remove             []string // Compile Remove patterns, slash separated
}
