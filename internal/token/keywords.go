package token

var keywords = map[string]Kind{
	"module":       KwModule,
	"endmodule":    KwEndModule,
	"interface":    KwInterface,
	"endinterface": KwEndInterface,
	"method":       KwMethod,
	"endmethod":    KwEndMethod,
	"rule":         KwRule,
	"endrule":      KwEndRule,
	"typedef":      KwTypedef,
	"struct":       KwStruct,
	"enum":         KwEnum,
	"union":        KwUnion,
	"tagged":       KwTagged,
	"import":       KwImport,
	"export":       KwExport,
	"package":      KwPackage,
	"endpackage":   KwEndPackage,
	"function":     KwFunction,
	"endfunction":  KwEndFunction,
	"instance":     KwInstance,
	"endinstance":  KwEndInstance,
	"deriving":     KwDeriving,
	"provisos":     KwProvisos,
	"return":       KwReturn,
	"let":          KwLet,
	"type":         KwType,
	"numeric":      KwNumeric,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// BSV keywords are case-sensitive; only the lowercase spelling is a keyword.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
