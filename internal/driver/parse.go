package driver

import (
	"fortio.org/safecast"

	"mslayout/internal/ast"
	"mslayout/internal/diag"
	"mslayout/internal/lexer"
	"mslayout/internal/parser"
	"mslayout/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Design  *ast.Design
	Bag     *diag.Bag
}

// Parse runs the structural extractor alone; `mslayout outline` uses it to
// list what the design declares without picking a top level.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}
	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	result := parser.ParseFile(lx, parser.Options{Reporter: rep, MaxErrors: maxErrors})

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Design:  result.Design,
		Bag:     bag,
	}, nil
}
