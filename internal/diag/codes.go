package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0
	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexEmptyEscapedIdent        Code = 1006

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedDelimiter  Code = 2002
	SynExpectSemicolon    Code = 2003
	SynExpectIdentifier   Code = 2004
	SynExpectType         Code = 2005
	SynUnexpectedTopLevel Code = 2006
	SynMissingEnd         Code = 2007
	SynSkippedTypedef     Code = 2008
	SynDuplicateDecl      Code = 2009
	SynExpectNumber       Code = 2010

	// Раскладка типов
	LayInfo           Code = 3000
	LayTopNotFound    Code = 3001
	LayUnresolvedType Code = 3002
	LayRecursiveType  Code = 3003
	LayAmbiguousTop   Code = 3004
	LayInstanceCycle  Code = 3005

	// Ввод-вывод
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проект
	ProjManifestInvalid Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexTokenTooLong:             "Token too long",
		LexEmptyEscapedIdent:        "Empty escaped identifier",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynExpectSemicolon:          "Expected semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynUnexpectedTopLevel:       "Unexpected top-level construct",
		SynMissingEnd:               "Missing end keyword",
		SynSkippedTypedef:           "Typedef skipped",
		SynDuplicateDecl:            "Duplicate declaration",
		SynExpectNumber:             "Expected number",
		LayInfo:                     "Layout information",
		LayTopNotFound:              "Top-level module not found",
		LayUnresolvedType:           "Unresolved type",
		LayRecursiveType:            "Recursive type",
		LayAmbiguousTop:             "Ambiguous top-level module",
		LayInstanceCycle:            "Instantiation cycle",
		IOLoadFileError:             "I/O load file error",
		IOCacheError:                "Cache error",
		ProjManifestInvalid:         "Invalid project manifest",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("LAY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
