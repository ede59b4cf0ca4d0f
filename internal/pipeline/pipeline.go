// Package pipeline orchestrates the two strictly-ordered phases (spec §2,
// §5): an embarrassingly-parallel per-file phase (parse, detect classes,
// detect calls, track types, resolve receivers) followed by a
// single-threaded global-assembly phase (build the ClassHierarchy) and a
// parallelizable enrichment pass. Grounded on the teacher's worker-pool
// directory walk in graph/construct.go (BuildGraphFromDirectory), adapted
// from a single Java grammar to the four-language dispatch this system
// requires.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	tssitter "github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/codepathfinder/polyglot-callgraph/internal/ast"
	"github.com/codepathfinder/polyglot-callgraph/internal/calldetect"
	"github.com/codepathfinder/polyglot-callgraph/internal/classdetect"
	"github.com/codepathfinder/polyglot-callgraph/internal/diagnostics"
	"github.com/codepathfinder/polyglot-callgraph/internal/enrich"
	"github.com/codepathfinder/polyglot-callgraph/internal/hierarchy"
	"github.com/codepathfinder/polyglot-callgraph/internal/imports"
	"github.com/codepathfinder/polyglot-callgraph/internal/langconfig"
	"github.com/codepathfinder/polyglot-callgraph/internal/typetracker"
	"github.com/codepathfinder/polyglot-callgraph/model"
	"github.com/codepathfinder/polyglot-callgraph/output"
)

// LanguageForPath maps a file extension to a supported Language, or ""
// when the extension is not one of the four supported grammars (spec §6,
// "Any other value yields an empty analysis result").
func LanguageForPath(path string) model.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return model.LangJavaScript
	case ".ts", ".tsx":
		return model.LangTypeScript
	case ".py", ".pyi":
		return model.LangPython
	case ".rs":
		return model.LangRust
	default:
		return ""
	}
}

func sitterLanguage(lang model.Language) *sitter.Language {
	switch lang {
	case model.LangJavaScript:
		return javascript.GetLanguage()
	case model.LangTypeScript:
		return tssitter.GetLanguage()
	case model.LangPython:
		return python.GetLanguage()
	case model.LangRust:
		return rust.GetLanguage()
	default:
		return nil
	}
}

// Options configures one analysis run.
type Options struct {
	Workers    int
	Table      *langconfig.Table
	Logger     *output.Logger
	Sink       *diagnostics.Sink
	Languages  map[model.Language]bool // nil/empty means "all four"
}

// perFileResult is the output of phase one for a single file: everything
// the global-assembly and enrichment phases need: its classes, detected
// calls and import/export graph. The source text is not kept.
type perFileResult struct {
	filePath string
	lang     model.Language
	classes  []*model.ClassDefinition
	calls    calldetect.Result
	fileGraph *model.FileGraph
}

// Result is the final artifact of a full pipeline run: the frozen
// ClassHierarchy plus every file's enriched analysis (spec §6, Outbound).
type Result struct {
	Hierarchy   *model.ClassHierarchy
	Files       []model.EnrichedFileAnalysis
	Diagnostics []model.Diagnostic
}

// Run drives both phases over filePaths to completion, honoring ctx
// cancellation at file granularity (§5, Cancellation: partial file results
// are discarded, never merged).
func Run(ctx context.Context, filePaths []string, opts Options) (*Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = output.NewLogger(output.VerbosityDefault)
	}
	sink := opts.Sink
	if sink == nil {
		sink = diagnostics.NewSink()
	}

	selected := make([]string, 0, len(filePaths))
	for _, fp := range filePaths {
		lang := LanguageForPath(fp)
		if lang == "" {
			sink.UnsupportedLanguage(fp, filepath.Ext(fp))
			continue
		}
		if len(opts.Languages) > 0 && !opts.Languages[lang] {
			continue
		}
		selected = append(selected, fp)
	}

	fileChan := make(chan string, len(selected))
	resultChan := make(chan perFileResult, len(selected))

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			runWorker(ctx, fileChan, resultChan, opts.Table, logger, sink)
		}()
	}

	for _, fp := range selected {
		fileChan <- fp
	}
	close(fileChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var perFile []perFileResult
	for r := range resultChan {
		perFile = append(perFile, r)
	}

	logger.Progress("Building class hierarchy (%d files)", len(perFile))
	builder := hierarchy.NewBuilder()
	modules := model.NewModuleGraph()
	for _, r := range perFile {
		builder.InsertFile(r.filePath, r.classes)
		modules.Files[r.filePath] = r.fileGraph
	}
	h := builder.Hierarchy()

	logger.Progress("Enriching call sites")
	enricher := enrich.New(h, modules, nil)

	files := make([]model.EnrichedFileAnalysis, 0, len(perFile))
	for _, r := range perFile {
		files = append(files, enrichFile(enricher, r))
	}

	sort.Slice(files, func(i, j int) bool { return files[i].FilePath < files[j].FilePath })

	return &Result{Hierarchy: h, Files: files, Diagnostics: sink.Diagnostics()}, nil
}

func runWorker(ctx context.Context, fileChan <-chan string, resultChan chan<- perFileResult, table *langconfig.Table, logger *output.Logger, sink *diagnostics.Sink) {
	parser := sitter.NewParser()
	defer parser.Close()

	classDet := classdetect.NewDetector(table)
	callDet := calldetect.NewDetector(table)

	for fp := range fileChan {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r, ok := analyzeFile(ctx, parser, fp, classDet, callDet, table, logger, sink)
		if ok {
			resultChan <- r
		}
	}
}

func analyzeFile(ctx context.Context, parser *sitter.Parser, fp string, classDet *classdetect.Detector, callDet *calldetect.Detector, table *langconfig.Table, logger *output.Logger, sink *diagnostics.Sink) (perFileResult, bool) {
	lang := LanguageForPath(fp)
	grammar := sitterLanguage(lang)
	if grammar == nil {
		sink.UnsupportedLanguage(fp, string(lang))
		return perFileResult{}, false
	}
	parser.SetLanguage(grammar)

	source, err := os.ReadFile(fp)
	if err != nil {
		sink.MalformedInput(fp, err.Error())
		return perFileResult{}, false
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		sink.MalformedInput(fp, fmt.Sprintf("parse error: %v", err))
		return perFileResult{}, false
	}
	defer tree.Close()

	logger.Debug("parsed %s (%s)", fp, lang)

	root := ast.WrapSitterNode(tree.RootNode())
	classes := classDet.Detect(lang, fp, root, source)

	knownClasses := make(map[string]bool, len(classes))
	for _, c := range classes {
		knownClasses[c.Name] = true
	}

	cfg := table.Get(lang)
	tracker := typetracker.New()
	typetracker.Seed(tracker, cfg, lang, root, source, classes)

	calls := callDet.Detect(lang, fp, root, source, tracker, knownClasses)
	fileGraph := imports.Extract(lang, root, source)

	return perFileResult{filePath: fp, lang: lang, classes: classes, calls: calls, fileGraph: fileGraph}, true
}

func enrichFile(enricher *enrich.Enricher, r perFileResult) model.EnrichedFileAnalysis {
	out := model.EnrichedFileAnalysis{FilePath: r.filePath, Classes: r.classes}
	for _, fc := range r.calls.FunctionCalls {
		out.FunctionCalls = append(out.FunctionCalls, enricher.EnrichFunctionCall(r.filePath, fc))
	}
	for _, mc := range r.calls.MethodCalls {
		out.MethodCalls = append(out.MethodCalls, enricher.EnrichMethodCall(mc))
	}
	for _, cc := range r.calls.ConstructorCalls {
		out.ConstructorCalls = append(out.ConstructorCalls, enricher.EnrichConstructorCall(r.filePath, cc))
	}

	sort.Slice(out.FunctionCalls, func(i, j int) bool {
		return lessLocation(out.FunctionCalls[i].Location, out.FunctionCalls[j].Location)
	})
	sort.Slice(out.MethodCalls, func(i, j int) bool {
		return lessLocation(out.MethodCalls[i].Location, out.MethodCalls[j].Location)
	})
	sort.Slice(out.ConstructorCalls, func(i, j int) bool {
		return lessLocation(out.ConstructorCalls[i].Location, out.ConstructorCalls[j].Location)
	})
	return out
}

func lessLocation(a, b model.Location) bool {
	if a.Start.Line != b.Start.Line {
		return a.Start.Line < b.Start.Line
	}
	return a.Start.Column < b.Start.Column
}
