package report

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding é uma tentativa de decodificação.
type Encoding struct {
	Name    string
	decoder func() *encoding.Decoder
}

var (
	EncodingUTF8   = Encoding{Name: "utf-8"}
	EncodingLatin1 = Encoding{Name: "latin-1", decoder: charmap.ISO8859_1.NewDecoder}
	EncodingUTF16  = Encoding{Name: "utf-16", decoder: utf16Decoder}
)

func utf16Decoder() *encoding.Decoder {
	return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
}

// Ordem de tentativa por família de relatório.
var (
	CommissionEncodings  = []Encoding{EncodingUTF8, EncodingLatin1}
	UtilizationEncodings = []Encoding{EncodingUTF8, EncodingLatin1, EncodingUTF16}
)

var (
	errInvalidUTF8 = errors.New("sequência UTF-8 inválida")
	errNulBytes    = errors.New("texto decodificado contém caracteres nulos")
)

// Decode tenta cada codificação na ordem e devolve o texto da primeira que servir.
// Latin-1 aceita qualquer byte, então um resultado com NUL (típico de UTF-16 lido
// como byte simples) é tratado como falha para que a próxima tentativa aconteça.
func Decode(data []byte, encodings []Encoding) (string, Encoding, error) {
	var lastErr error
	for _, enc := range encodings {
		text, err := enc.decode(data)
		if err == nil {
			return text, enc, nil
		}
		lastErr = err
	}
	names := make([]string, len(encodings))
	for i, enc := range encodings {
		names[i] = enc.Name
	}
	return "", Encoding{}, &DecodeError{
		Message: "nenhuma codificação serviu (" + strings.Join(names, ", ") + ")",
		Cause:   lastErr,
	}
}

func (e Encoding) decode(data []byte) (string, error) {
	if e.decoder == nil {
		if !utf8.Valid(data) {
			return "", errInvalidUTF8
		}
		text := strings.TrimPrefix(string(data), "\ufeff")
		if strings.ContainsRune(text, 0) {
			return "", errNulBytes
		}
		return text, nil
	}
	out, err := e.decoder().Bytes(data)
	if err != nil {
		return "", err
	}
	text := strings.TrimPrefix(string(out), "\ufeff")
	if strings.ContainsRune(text, 0) {
		return "", errNulBytes
	}
	return text, nil
}
