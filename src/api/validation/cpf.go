// Package validation valida e canoniza os dados pessoais recebidos nos
// formulários públicos. Todas as funções são puras.
package validation

import (
	"errors"
	"strings"
)

var (
	ErrCPFLength   = errors.New("CPF deve ter 11 dígitos")
	ErrCPFPattern  = errors.New("CPF inválido")
	ErrCPFChecksum = errors.New("CPF inválido")
)

func somenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// digitoVerificador calcula um dígito verificador de CPF: pesos
// decrescentes a partir de pesoInicial, soma mod 11, e 0 quando o
// resto é menor que 2.
func digitoVerificador(digitos string, pesoInicial int) int {
	soma := 0
	for i, r := range digitos {
		soma += int(r-'0') * (pesoInicial - i)
	}
	resto := soma % 11
	if resto < 2 {
		return 0
	}
	return 11 - resto
}

// FormatCPF valida um CPF em texto livre e devolve a forma canônica
// 000.000.000-00. Aceita entrada já pontuada ou só dígitos.
func FormatCPF(raw string) (string, error) {
	cpf := somenteDigitos(raw)
	if len(cpf) != 11 {
		return "", ErrCPFLength
	}

	// Sequências de um dígito só (000..., 111...) passam na conta do
	// checksum mas não são CPFs emitidos.
	if cpf == strings.Repeat(string(cpf[0]), 11) {
		return "", ErrCPFPattern
	}

	if int(cpf[9]-'0') != digitoVerificador(cpf[:9], 10) {
		return "", ErrCPFChecksum
	}
	if int(cpf[10]-'0') != digitoVerificador(cpf[:10], 11) {
		return "", ErrCPFChecksum
	}

	return cpf[:3] + "." + cpf[3:6] + "." + cpf[6:9] + "-" + cpf[9:], nil
}
