package types

import (
	"time"

	"gorm.io/gorm"
)

// Ciclo de vida do edital. Transições são dirigidas pelo operador; a
// única automática é o carimbo de publicação ao abrir (BeforeSave).
const (
	StatusRascunho  = "rascunho"
	StatusEmBreve   = "em_breve"
	StatusAberto    = "aberto"
	StatusEncerrado = "encerrado"
	StatusSuspenso  = "suspenso"
	StatusCancelado = "cancelado"
)

var statusLabels = map[string]string{
	StatusRascunho:  "Rascunho",
	StatusEmBreve:   "Em Breve",
	StatusAberto:    "Aberto",
	StatusEncerrado: "Encerrado",
	StatusSuspenso:  "Suspenso",
	StatusCancelado: "Cancelado",
}

var statusCores = map[string]string{
	StatusRascunho:  "#6b7280",
	StatusEmBreve:   "#1e40af",
	StatusAberto:    "#10b981",
	StatusEncerrado: "#ef4444",
	StatusSuspenso:  "#f59e0b",
	StatusCancelado: "#ef4444",
}

func StatusValido(s string) bool {
	_, ok := statusLabels[s]
	return ok
}

func StatusLabel(s string) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return s
}

// AceitaNotificacao diz se o edital ainda recebe pedidos de aviso.
// Só faz sentido antes da abertura: rascunho e em_breve.
func (e *Edital) AceitaNotificacao() bool {
	return e.Status == StatusRascunho || e.Status == StatusEmBreve
}

// EstaAberto combina a intenção administrativa (status) com o fato
// temporal (janela de inscrição). Um edital marcado como aberto pelo
// operador ainda conta como fechado fora da janela declarada.
func (e *Edital) EstaAberto() bool {
	return e.EstaAbertoEm(time.Now())
}

func (e *Edital) EstaAbertoEm(agora time.Time) bool {
	if e.Status != StatusAberto {
		return false
	}
	if e.DataAbertura != nil && agora.Before(*e.DataAbertura) {
		return false
	}
	if e.DataEncerramento != nil && agora.After(*e.DataEncerramento) {
		return false
	}
	return true
}

// DiasRestantes retorna nil sem data de encerramento, 0 quando já
// passou e, caso contrário, os dias inteiros até o encerramento
// (truncando, nunca arredondando).
func (e *Edital) DiasRestantes() *int {
	return e.DiasRestantesEm(time.Now())
}

func (e *Edital) DiasRestantesEm(agora time.Time) *int {
	if e.DataEncerramento == nil {
		return nil
	}
	dias := 0
	if agora.Before(*e.DataEncerramento) {
		dias = int(e.DataEncerramento.Sub(agora).Hours() / 24)
	}
	return &dias
}

// Cor retorna a cor do status (personalizada ou padrão)
func (e *Edital) Cor() string {
	if e.CorStatus != "" {
		return e.CorStatus
	}
	if c, ok := statusCores[e.Status]; ok {
		return c
	}
	return statusCores[StatusRascunho]
}

// BeforeSave fixa a data de publicação na primeira vez que o edital
// passa a aberto.
func (e *Edital) BeforeSave(tx *gorm.DB) error {
	if e.Status == StatusAberto && e.DataPublicacao == nil {
		now := time.Now()
		e.DataPublicacao = &now
	}
	return nil
}

// CPFMascarado devolve o CPF formatado próprio para exibição pública:
// 111.444.777-35 -> 111.***.**35
func (n *NotificacaoEdital) CPFMascarado() string {
	if len(n.CPF) < 5 {
		return ""
	}
	return n.CPF[:3] + ".***.**" + n.CPF[len(n.CPF)-2:]
}
