package csharp

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/viant/afs"
	"github.com/viant/scomposer/inspector/graph"
	"github.com/viant/scomposer/inspector/repository"
)

// Inspector provides functionality to inspect C# code and extract namespace, using and member declarations
type Inspector struct {
	config   *graph.Config
	detector *repository.Detector
	fs       afs.Service
	cache    *lru.Cache[string, *graph.File]
	logger   *slog.Logger
}

// Option configures an Inspector
type Option func(*Inspector)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// WithDetector sets the project detector used by InspectProject
func WithDetector(detector *repository.Detector) Option {
	return func(i *Inspector) {
		i.detector = detector
	}
}

// NewInspector creates a new C# Inspector with the provided configuration
func NewInspector(config *graph.Config, options ...Option) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	ret := &Inspector{
		config: config,
		fs:     afs.New(),
		logger: slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.detector == nil {
		ret.detector = repository.New()
	}
	if config.CacheSize > 0 {
		ret.cache, _ = lru.New[string, *graph.File](config.CacheSize)
	}
	return ret
}

// InspectSource parses C# source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	return i.parse(context.Background(), src, "source.cs")
}

// InspectFile parses a C# source file, reusing a cached result when the content is unchanged
func (i *Inspector) InspectFile(filename string) (*graph.File, error) {
	return i.inspectFile(context.Background(), filename)
}

func (i *Inspector) inspectFile(ctx context.Context, filename string) (*graph.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	hash, err := graph.Hash(src)
	if err != nil {
		return nil, fmt.Errorf("failed to hash file %s: %w", filename, err)
	}
	key := filename + ":" + strconv.FormatUint(hash, 16)
	if i.cache != nil {
		if file, ok := i.cache.Get(key); ok {
			i.logger.Debug("reusing parsed file", "path", filename)
			return file, nil
		}
	}
	file, err := i.parse(ctx, src, filename)
	if err != nil {
		return nil, err
	}
	if i.cache != nil {
		i.cache.Add(key, file)
	}
	return file, nil
}

// InspectProject detects the project at location, parses its compile items and indexes symbols
func (i *Inspector) InspectProject(ctx context.Context, location string) (*graph.Project, error) {
	info, err := i.detector.DetectProject(location)
	if err != nil {
		return nil, err
	}
	return i.InspectDetected(ctx, info)
}

// InspectDetected parses the compile items of an already detected project and indexes symbols
func (i *Inspector) InspectDetected(ctx context.Context, info *repository.Project) (*graph.Project, error) {
	sources, err := i.detector.SourceFiles(ctx, info)
	if err != nil {
		return nil, err
	}
	project := &graph.Project{
		Name:        info.Name,
		Type:        info.Type,
		RootPath:    info.RootPath,
		ProjectFile: info.ProjectFile,
	}
	for _, source := range sources {
		file, err := i.inspectFile(ctx, source)
		if err != nil {
			return nil, err
		}
		project.AddFile(file)
	}
	project.Init()
	i.logger.Debug("inspected project", "project", project.Name, "files", len(project.Files), "namespaces", len(project.DeclaredNamespaces()))
	return project, nil
}

func (i *Inspector) parse(ctx context.Context, src []byte, filename string) (*graph.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse file %s: %w", filename, err)
	}
	rootNode := tree.RootNode()
	aFile := &graph.File{
		Name:      filepath.Base(filename),
		Path:      filename,
		HasErrors: rootNode.HasError(),
	}
	if aFile.Hash, err = graph.Hash(src); err != nil {
		return nil, err
	}
	if aFile.HasErrors {
		i.logger.Warn("syntax errors found, output may be incomplete", "path", filename)
	}
	i.processCompilationUnit(rootNode, src, aFile)
	i.logger.Debug("parsed file", "path", filename, "sites", len(aFile.Sites), "imports", len(aFile.Imports))
	return aFile, nil
}

// processCompilationUnit extracts file level usings and namespace declarations
func (i *Inspector) processCompilationUnit(rootNode *sitter.Node, src []byte, aFile *graph.File) {
	var children []*sitter.Node
	for j := 0; j < int(rootNode.NamedChildCount()); j++ {
		children = append(children, rootNode.NamedChild(j))
	}
	for _, child := range children {
		if child.Type() == "using_directive" {
			aFile.Imports = append(aFile.Imports, parseUsingDirective(child, src, "", aFile.Path))
		}
	}
	for j, child := range children {
		switch child.Type() {
		case "namespace_declaration":
			i.processNamespace(child, bodyNode(child), src, aFile, "", aFile.Imports)
		case "file_scoped_namespace_declaration":
			// members are either nested in the node or follow it as siblings depending on grammar version
			members := namedChildren(child)
			if len(members) <= 1 {
				members = children[j+1:]
			}
			i.processFileScopedNamespace(child, members, src, aFile)
			return
		}
	}
}

func (i *Inspector) processFileScopedNamespace(node *sitter.Node, members []*sitter.Node, src []byte, aFile *graph.File) {
	name := namespaceName(node, src)
	site := &graph.Site{Namespace: name, Location: location(node)}
	aFile.AddSite(site)
	site.Imports = append(site.Imports, aFile.Imports...)
	i.collectSite(site, members, src, aFile, node.ChildByFieldName("name"))
}

// processNamespace registers a site for a block namespace declaration and its nested namespaces
func (i *Inspector) processNamespace(node, body *sitter.Node, src []byte, aFile *graph.File, parent string, inherited []*graph.Import) {
	name := namespaceName(node, src)
	if parent != "" {
		name = parent + "." + name
	}
	site := &graph.Site{Namespace: name, Location: location(node)}
	aFile.AddSite(site)
	site.Imports = append(site.Imports, inherited...)
	if body == nil {
		return
	}
	i.collectSite(site, namedChildren(body), src, aFile, nil)
}

func (i *Inspector) collectSite(site *graph.Site, children []*sitter.Node, src []byte, aFile *graph.File, skip *sitter.Node) {
	for _, child := range children {
		if child.Type() == "using_directive" {
			site.Imports = append(site.Imports, parseUsingDirective(child, src, site.Namespace, aFile.Path))
		}
	}
	collector := newMemberCollector(src, site.Namespace, aFile.Path, i.config.KeepComments)
	for _, child := range children {
		if skip != nil && child.StartByte() == skip.StartByte() && child.EndByte() == skip.EndByte() {
			continue
		}
		switch child.Type() {
		case "using_directive", "extern_alias_directive":
			collector.reset()
		case "namespace_declaration":
			collector.reset()
			i.processNamespace(child, bodyNode(child), src, aFile, site.Namespace, site.Imports)
		default:
			member := collector.add(child)
			if member == nil {
				continue
			}
			site.Members = append(site.Members, member)
			if typ := parseTypeDeclaration(child, src, site.Namespace, aFile.Path, i.config.KeepComments); typ != nil {
				site.Types = append(site.Types, typ)
			}
		}
	}
}
