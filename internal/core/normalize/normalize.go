// Package normalize reúne as funções de limpeza de texto e de números no padrão brasileiro
// usadas pelos leitores de relatório e pela consolidação.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// ruídos removidos antes de converter um valor monetário/decimal.
var noiseReplacer = strings.NewReplacer("\u00a0", "", "R$", "")

// StripDiacritics remove acentos mantendo a letra base ("MECÂNICO" -> "MECANICO").
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// Upper colapsa espaços (incluindo NBSP) e devolve o texto em maiúsculas.
func Upper(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.ToUpper(strings.TrimSpace(s))
}

// Key é a forma usada nas comparações tolerantes a acento: sem acento, maiúscula, espaços colapsados.
func Key(s string) string {
	return Upper(StripDiacritics(s))
}

// ToFloatBRL converte um valor no padrão brasileiro ("1.234,56") em float64.
// Valores numéricos passam direto; vazio ou inválido vira 0.0.
func ToFloatBRL(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0.0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return parseBRLString(v)
	default:
		return parseBRLString(fmt.Sprint(v))
	}
}

func parseBRLString(val string) float64 {
	s := strings.TrimSpace(noiseReplacer.Replace(val))
	if s == "" {
		return 0.0
	}
	if strings.Contains(s, ".") && strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0.0
	}
	return f
}

// FormatBRL formata com duas casas e vírgula decimal, sem separador de milhar.
func FormatBRL(val float64) string {
	return strings.Replace(strconv.FormatFloat(val, 'f', 2, 64), ".", ",", 1)
}
