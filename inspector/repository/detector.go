package repository

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// Detector resolves the project file from user input and enumerates its compile items
type Detector struct {
	fs          afs.Service
	excludeDirs map[string]bool
	exclude     []string
	logger      *slog.Logger
}

// Option configures a Detector
type Option func(*Detector)

// WithExcludeDirs sets directory names never descended into
func WithExcludeDirs(dirs ...string) Option {
	return func(d *Detector) {
		d.excludeDirs = make(map[string]bool, len(dirs))
		for _, dir := range dirs {
			d.excludeDirs[dir] = true
		}
	}
}

// WithExcludeGlobs sets relative path patterns removed from compile items
func WithExcludeGlobs(patterns ...string) Option {
	return func(d *Detector) {
		d.exclude = patterns
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// New creates a new project detector instance
func New(options ...Option) *Detector {
	ret := &Detector{
		fs:          afs.New(),
		excludeDirs: map[string]bool{"bin": true, "obj": true},
		logger:      slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// DetectProject resolves location, a project file or a directory holding exactly one, into project info.
// An empty location means the current directory.
func (d *Detector) DetectProject(location string) (*Project, error) {
	if location == "" {
		location = "."
	}
	absPath, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s does not exist", ErrProjectNotFound, location)
		}
		return nil, err
	}
	projectFile := absPath
	if fileInfo.IsDir() {
		if projectFile, err = d.findProjectFile(absPath); err != nil {
			return nil, err
		}
	} else if !strings.EqualFold(filepath.Ext(absPath), ProjectExt) {
		return nil, fmt.Errorf("%w: %s is not a %s file", ErrProjectNotFound, location, ProjectExt)
	}

	content, err := d.fs.DownloadWithURL(context.Background(), projectFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", projectFile, err)
	}
	settings, err := ParseBuildSettings(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", projectFile, err)
	}
	info := &Project{
		RootPath:    filepath.Dir(projectFile),
		ProjectFile: projectFile,
		Type:        "csharp",
		Name:        projectName(projectFile, settings),
		Build:       settings,
	}
	d.logger.Debug("detected project", "name", info.Name, "file", projectFile, "sdk", settings.SDK)
	return info, nil
}

// findProjectFile returns the single project file in dir
func (d *Detector) findProjectFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var candidates []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ProjectExt) {
			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}
	}
	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("%w: no %s file in %s", ErrProjectNotFound, ProjectExt, dir)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("%w: %d %s files in %s, specify one", ErrProjectNotFound, len(candidates), ProjectExt, dir)
	}
}

// SourceFiles returns absolute paths of the project's compile items, sorted
func (d *Detector) SourceFiles(ctx context.Context, project *Project) ([]string, error) {
	settings := project.Build
	if settings == nil {
		settings = &BuildSettings{DefaultCompileItem: true}
	}
	include := settings.Include
	if settings.DefaultCompileItem {
		include = append([]string{"**/*.cs"}, include...)
	}
	includes, err := NewPatterns(include...)
	if err != nil {
		return nil, err
	}
	removes, err := NewPatterns(append(append([]string{}, settings.Remove...), d.exclude...)...)
	if err != nil {
		return nil, err
	}

	var sources []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		location := filepath.Join(filepath.FromSlash(url.Path(url.Join(baseURL, parent))), info.Name())
		relative, err := filepath.Rel(project.RootPath, location)
		if err != nil {
			return true, nil
		}
		relative = filepath.ToSlash(relative)
		if d.isExcludedDir(relative) || !strings.EqualFold(path.Ext(relative), ".cs") {
			return true, nil
		}
		if !includes.Match(relative) || removes.Match(relative) {
			return true, nil
		}
		sources = append(sources, location)
		return true, nil
	}
	if err := d.fs.Walk(ctx, project.RootPath, visitor); err != nil {
		return nil, fmt.Errorf("failed to list sources of %s: %w", project.ProjectFile, err)
	}
	sort.Strings(sources)
	d.logger.Debug("compile items", "project", project.Name, "count", len(sources))
	return sources, nil
}

// isExcludedDir returns true if any directory of a relative path is excluded or hidden
func (d *Detector) isExcludedDir(relative string) bool {
	segments := strings.Split(relative, "/")
	for _, segment := range segments[:len(segments)-1] {
		if d.excludeDirs[segment] || strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// projectName prefers RootNamespace, then AssemblyName, then the project file name
func projectName(projectFile string, settings *BuildSettings) string {
	switch {
	case settings.RootNamespace != "":
		return settings.RootNamespace
	case settings.AssemblyName != "":
		return settings.AssemblyName
	}
	return strings.TrimSuffix(filepath.Base(projectFile), filepath.Ext(projectFile))
}
