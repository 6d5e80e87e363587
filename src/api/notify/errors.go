package notify

import (
	"errors"
	"fmt"
)

// Erros esperados do fluxo de submissão. Todos são resultado de entrada
// do usuário e voltam para o formulário; nenhum é falha sistêmica.
var (
	ErrNotFound     = errors.New("edital não encontrado")
	ErrNotEligible  = errors.New("este edital não está disponível para notificações")
	ErrInvalidEmail = errors.New("e-mail inválido")
	ErrTermos       = errors.New("você deve aceitar os termos para continuar")
	ErrDuplicate    = errors.New("você já solicitou notificação para este edital com este CPF")
)

// MissingFieldError aponta o primeiro campo obrigatório em branco.
type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("campo obrigatório: %s", e.Field)
}

// labels dos campos nas mensagens voltadas ao usuário
var fieldLabels = map[string]string{
	"nome_completo":     "Nome Completo",
	"email":             "E-mail",
	"cpf":               "CPF",
	"telefone_whatsapp": "Telefone/WhatsApp",
}

func FieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
