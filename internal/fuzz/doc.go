// Package fuzztests holds fuzz harnesses for the front half of the resolver
// (source -> lexer -> parser) and for the query API. msc output is
// machine-generated, but hand-edited or truncated files do reach the tool, so
// nothing may panic or hang on arbitrary bytes.
//
// Запуск: go test ./internal/fuzz -fuzz=FuzzParserNoHang -fuzztime=30s
package fuzztests
