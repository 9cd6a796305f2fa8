package lexer

// ===== Классификаторы =====

// BSV идентификаторы — только ASCII.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9') || b == '$'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isBaseChar(b byte) bool {
	switch b {
	case 'b', 'B', 'o', 'O', 'd', 'D', 'h', 'H':
		return true
	}
	return false
}

// цифры после базы: hex плюс x/z/? для неопределённых битов и '_'
func isBasedDigit(b byte) bool {
	return isHex(b) || b == '_' || b == 'x' || b == 'X' || b == 'z' || b == 'Z' || b == '?'
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// peekAt смотрит на байт со смещением n от курсора, 0 за пределами файла.
func (lx *Lexer) peekAt(n uint32) byte {
	off := lx.cursor.Off + n
	if off >= lx.cursor.limit() {
		return 0
	}
	return lx.file.Content[off]
}

// Проверка для кейса "'h1F" / "'0": текущая кавычка открывает литерал?
func (lx *Lexer) isSizedAfterQuote() bool {
	b1 := lx.peekAt(1)
	if b1 == '0' || b1 == '1' {
		return true
	}
	if b1 == 's' || b1 == 'S' {
		return isBaseChar(lx.peekAt(2)) && isBasedDigit(lx.peekAt(3))
	}
	return isBaseChar(b1) && isBasedDigit(lx.peekAt(2))
}

// ===== Матчеры последовательностей операторов (жадность) =====

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
