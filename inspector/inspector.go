package inspector

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/viant/scomposer/inspector/csharp"
	"github.com/viant/scomposer/inspector/graph"
	"github.com/viant/scomposer/inspector/repository"
)

// Inspector provides an interface for inspecting source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts declarations
	InspectSource(src []byte) (*graph.File, error)

	// InspectFile parses a source file and extracts declarations
	InspectFile(filename string) (*graph.File, error)

	// InspectProject inspects a project and builds its symbol index
	InspectProject(ctx context.Context, location string) (*graph.Project, error)
}

// Factory creates appropriate inspectors based on language
type Factory struct {
	config   *graph.Config
	detector *repository.Detector
	logger   *slog.Logger
	csharp   *csharp.Inspector
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *graph.Config, detector *repository.Detector, logger *slog.Logger) *Factory {
	if config == nil {
		config = graph.DefaultConfig()
	}
	if detector == nil {
		detector = repository.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		config:   config,
		detector: detector,
		logger:   logger,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".cs", repository.ProjectExt:
		return f.csharpInspector(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// csharpInspector returns a shared inspector so its parse cache survives repeated runs
func (f *Factory) csharpInspector() *csharp.Inspector {
	if f.csharp == nil {
		f.csharp = csharp.NewInspector(f.config, csharp.WithDetector(f.detector), csharp.WithLogger(f.logger))
	}
	return f.csharp
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(filename string) (*graph.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(filename)
}

// InspectProject detects the project at location and inspects it with the inspector for its type
func (f *Factory) InspectProject(ctx context.Context, location string) (*graph.Project, error) {
	project, err := f.detector.DetectProject(location)
	if err != nil {
		return nil, err
	}
	switch project.Type {
	case "csharp":
		return f.csharpInspector().InspectDetected(ctx, project)
	}
	return nil, fmt.Errorf("unsupported project type: %s", project.Type)
}
