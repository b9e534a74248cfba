// Package report lê os relatórios HTML de comissões e de aproveitamento e extrai os registros por técnico.
package report

import "fmt"

// DecodeError indica que os bytes do arquivo não correspondem a nenhuma codificação tentada.
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("erro de decodificação: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("erro de decodificação: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// MarkerParseError indica que um marcador foi encontrado mas o texto seguinte não trouxe o código do técnico.
// Nunca interrompe a leitura; é apenas registrado no log.
type MarkerParseError struct {
	Marker string
	Linha  int
	Texto  string
}

func (e *MarkerParseError) Error() string {
	return fmt.Sprintf("marcador %q sem código de técnico na linha %d: %q", e.Marker, e.Linha, e.Texto)
}

// ParseError indica que o HTML não pôde ser interpretado.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("erro ao interpretar HTML: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("erro ao interpretar HTML: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
