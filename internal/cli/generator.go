package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/toyz/routegen/internal/errors"
	"github.com/toyz/routegen/internal/generator"
	"github.com/toyz/routegen/internal/models"
	"github.com/toyz/routegen/internal/parser"
	"github.com/toyz/routegen/internal/registry"
	"github.com/toyz/routegen/internal/utils"
)

// GenerationSummary describes the outcome of a run
type GenerationSummary struct {
	Modules        int
	Routes         int
	Written        int
	Unchanged      int
	Skipped        int
	Failed         int
	BytesWritten   uint64
	GeneratedFiles []string
	StaleFiles     []string
}

// Generator coordinates the generation process: discovery, extraction,
// handler loading, validation, emission and writing, one module at a time
type Generator struct {
	scanner     *DirectoryScanner
	diagnostics *utils.DiagnosticSystem
	loader      registry.Loader // nil selects a SourceLoader over the run's project
	summary     GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticSilent)
	}
	return &Generator{
		scanner:     NewDirectoryScanner(),
		diagnostics: diagnostics,
	}
}

// WithLoader replaces the source loader with a caller supplied one
func (g *Generator) WithLoader(loader registry.Loader) *Generator {
	g.loader = loader
	return g
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process. cfg must be finalized.
//
// By default the first failing module stops the run; routers written before
// it are kept. With ContinueOnError every module is attempted and the
// failures are returned together.
func (g *Generator) Run(ctx context.Context, cfg *Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}

	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Controllers: %s, routes: %s, target: %s", cfg.ControllersRoot(), cfg.RoutesRoot(), cfg.Target)

	module, err := ResolveModule(cfg.ModuleName, cfg.Root)
	if err != nil {
		return err
	}
	g.diagnostics.Debug("Resolved module name: %s", module.Path)

	refs, err := g.scanner.Discover(cfg)
	if err != nil {
		return err
	}

	project, err := g.loadProject(cfg)
	if err != nil {
		return err
	}

	emitter, err := generator.NewEmitter(cfg.Target)
	if err != nil {
		return err
	}

	pipeline := &modulePipeline{
		extractor: parser.NewExtractor(project),
		loader:    g.loader,
		emitter:   emitter,
		module:    module,
	}
	if pipeline.loader == nil {
		pipeline.loader = registry.NewSourceLoader(project)
	}

	g.diagnostics.PhaseHeader("Generating")
	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()

	var result *multierror.Error
	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := g.processModule(cfg, pipeline, ref); err != nil {
			g.summary.Failed++
			if !cfg.ContinueOnError {
				return err
			}
			g.diagnostics.Error("%s: %v", ref.SourcePath, err)
			result = multierror.Append(result, err)
		}
	}

	if len(g.summary.StaleFiles) > 0 {
		result = multierror.Append(result, errors.NewStaleOutput(g.summary.StaleFiles))
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	g.diagnostics.Summary("Generation complete",
		utils.Stat{Name: "Modules", Value: g.summary.Modules},
		utils.Stat{Name: "Routes", Value: g.summary.Routes},
		utils.Stat{Name: "Written", Value: fmt.Sprintf("%d (%s)", g.summary.Written, humanize.Bytes(g.summary.BytesWritten))},
		utils.Stat{Name: "Unchanged", Value: g.summary.Unchanged},
		utils.Stat{Name: "Duration", Value: time.Since(startTime).Round(time.Millisecond)},
	)
	return nil
}

// loadProject parses every package under the controllers root once, before any module runs
func (g *Generator) loadProject(cfg *Config) (*parser.Project, error) {
	dirs, err := g.scanner.PackageDirs(cfg)
	if err != nil {
		return nil, err
	}

	project := parser.NewProject()
	for _, dir := range dirs {
		if err := project.AddDir(dir); err != nil {
			return nil, err
		}
	}
	g.diagnostics.Debug("Parsed %d package directories", len(dirs))
	return project, nil
}

func (g *Generator) processModule(cfg *Config, pipeline *modulePipeline, ref models.ModuleRef) error {
	out, err := pipeline.run(ref)
	if err != nil {
		return err
	}
	if out == nil {
		g.summary.Skipped++
		g.diagnostics.Verbose("Skipping %s: no route declarations and no implementation package", ref.SourcePath)
		return nil
	}

	g.summary.Modules++
	g.summary.Routes += out.Routes

	same, err := utils.FileMatches(out.OutputPath, out.Content)
	if err != nil {
		return errors.WrapFileSystemError("read", out.OutputPath, err)
	}

	switch {
	case same:
		g.summary.Unchanged++
		g.diagnostics.Verbose("%s is up to date", out.OutputPath)
	case cfg.Check:
		g.summary.StaleFiles = append(g.summary.StaleFiles, out.OutputPath)
		g.reportStale(out)
	default:
		if err := utils.WriteFileAtomic(out.OutputPath, out.Content, 0o644); err != nil {
			return errors.WrapFileSystemError("write", out.OutputPath, err)
		}
		g.summary.Written++
		g.summary.BytesWritten += uint64(len(out.Content))
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, out.OutputPath)
		g.diagnostics.PhaseItem("%s (%d routes)", out.OutputPath, out.Routes)
	}
	return nil
}

func (g *Generator) reportStale(out *models.GeneratedRouterModule) {
	g.diagnostics.Warn("%s is out of date", out.OutputPath)
	if !g.diagnostics.Enabled(utils.DiagnosticVerbose) {
		return
	}

	current, err := os.ReadFile(out.OutputPath)
	if err != nil {
		current = nil
	}
	diff, err := utils.UnifiedDiff(out.OutputPath, current, out.Content)
	if err == nil {
		g.diagnostics.Verbose("\n%s", diff)
	}
}

// modulePipeline holds the per-run collaborators that turn one module into a router
type modulePipeline struct {
	extractor *parser.Extractor
	loader    registry.Loader
	emitter   *generator.Emitter
	module    utils.GoModule
}

// run returns nil without error for a declaration-free file that has no implementation package
func (p *modulePipeline) run(ref models.ModuleRef) (*models.GeneratedRouterModule, error) {
	var err error
	if ref.ContractImport, err = p.module.ImportPath(filepath.Dir(ref.DeclFile)); err != nil {
		return nil, errors.WrapGenerateError(ref.SourcePath, err)
	}
	if ref.ImplImport, err = p.module.ImportPath(ref.ImplDir); err != nil {
		return nil, errors.WrapGenerateError(ref.SourcePath, err)
	}

	specs, err := p.extractor.Extract(ref.DeclFile)
	if err != nil {
		return nil, err
	}

	handlers, err := p.loader.Load(ref)
	if err != nil {
		if len(specs) == 0 && errors.CodeOf(err) == errors.MissingImplementationCode {
			return nil, nil
		}
		return nil, err
	}

	return p.emitter.Emit(ref, specs, handlers)
}
