package validation

import "errors"

var ErrTelefoneLength = errors.New("telefone deve ter 10 ou 11 dígitos")

// FormatTelefone normaliza um telefone brasileiro em texto livre para
// (DD) DDDD-DDDD (fixo) ou (DD) DDDDD-DDDD (celular). Vazio é válido:
// o telefone é opcional nos formulários.
func FormatTelefone(raw string) (string, error) {
	tel := somenteDigitos(raw)
	switch len(tel) {
	case 0:
		return "", nil
	case 10:
		return "(" + tel[:2] + ") " + tel[2:6] + "-" + tel[6:], nil
	case 11:
		return "(" + tel[:2] + ") " + tel[2:7] + "-" + tel[7:], nil
	default:
		return "", ErrTelefoneLength
	}
}
