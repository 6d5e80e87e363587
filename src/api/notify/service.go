// Package notify implementa o fluxo de pedido de notificação de
// edital: validação dos dados do cidadão, elegibilidade do edital,
// bloqueio de duplicata e persistência.
package notify

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/inova-hub/portal-editais/src/api/data"
	"github.com/inova-hub/portal-editais/src/api/types"
	"github.com/inova-hub/portal-editais/src/api/validation"
	"github.com/redis/go-redis/v9"
)

// Input são os campos do formulário público, antes de qualquer
// normalização.
type Input struct {
	CPF              string `json:"cpf" form:"cpf"`
	NomeCompleto     string `json:"nome_completo" form:"nome_completo"`
	Email            string `json:"email" form:"email"`
	TelefoneWhatsapp string `json:"telefone_whatsapp" form:"telefone_whatsapp"`
	AceitoTermos     bool   `json:"aceito_termos" form:"aceito_termos"`
}

// Meta carrega os dados da requisição gravados junto ao pedido.
type Meta struct {
	IP        string
	UserAgent string
}

type Service struct {
	store Store
	rdb   *redis.Client // opcional; fast-path de duplicata e eventos
}

func NewService(store Store, rdb *redis.Client) *Service {
	return &Service{store: store, rdb: rdb}
}

// SubmitBySlug atende o formulário tradicional, que referencia o
// edital pela URL.
func (s *Service) SubmitBySlug(ctx context.Context, slug string, in Input, meta Meta) (*types.NotificacaoEdital, error) {
	ed, err := s.store.EditalBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, ed, in, meta)
}

// SubmitByID atende o caminho AJAX, que manda o id no corpo.
func (s *Service) SubmitByID(ctx context.Context, editalID uint64, in Input, meta Meta) (*types.NotificacaoEdital, error) {
	ed, err := s.store.EditalByID(ctx, editalID)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, ed, in, meta)
}

func (s *Service) submit(ctx context.Context, ed *types.Edital, in Input, meta Meta) (*types.NotificacaoEdital, error) {
	if !ed.AceitaNotificacao() {
		return nil, ErrNotEligible
	}

	for _, f := range []struct{ name, value string }{
		{"nome_completo", in.NomeCompleto},
		{"email", in.Email},
		{"cpf", in.CPF},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, MissingFieldError{Field: f.name}
		}
	}
	if !in.AceitoTermos {
		return nil, ErrTermos
	}

	// Propositalmente permissivo: o e-mail só precisa parecer um e-mail.
	if !strings.Contains(in.Email, "@") || !strings.Contains(in.Email, ".") {
		return nil, ErrInvalidEmail
	}

	cpf, err := validation.FormatCPF(in.CPF)
	if err != nil {
		return nil, err
	}
	telefone, err := validation.FormatTelefone(in.TelefoneWhatsapp)
	if err != nil {
		return nil, err
	}

	reserved := false
	if s.rdb != nil {
		ok, err := data.ReserveNotificacao(ctx, s.rdb, ed.ID, cpf)
		if err != nil {
			// Redis fora do ar não bloqueia submissão; o banco decide.
			log.Printf("notify: reserve fast-path: %v", err)
		}
		// Reserva já tomada indica provável duplicata, mas a chave pode
		// ter sobrado de uma submissão que nunca chegou ao banco; quem
		// rejeita é a checagem e a chave única abaixo.
		reserved = err == nil && ok
	}

	exists, err := s.store.NotificacaoExists(ctx, ed.ID, cpf)
	if err != nil {
		s.release(ctx, reserved, ed.ID, cpf)
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	n := &types.NotificacaoEdital{
		EditalID:         ed.ID,
		CPF:              cpf,
		NomeCompleto:     strings.TrimSpace(in.NomeCompleto),
		Email:            strings.TrimSpace(in.Email),
		TelefoneWhatsapp: telefone,
		IPEndereco:       meta.IP,
		UserAgent:        meta.UserAgent,
	}
	if err := s.store.CreateNotificacao(ctx, n); err != nil {
		// A chave única do banco é a verdade; a pré-checagem pode ter
		// passado com duas submissões simultâneas.
		if errors.Is(err, ErrDuplicate) {
			return nil, ErrDuplicate
		}
		s.release(ctx, reserved, ed.ID, cpf)
		return nil, err
	}

	if s.rdb != nil {
		if err := data.PublishNotificacao(ctx, s.rdb, map[string]interface{}{
			"edital_id": ed.ID,
			"slug":      ed.Slug,
			"email":     n.Email,
			"id":        n.ID,
		}); err != nil {
			log.Printf("notify: publish event: %v", err)
		}
	}
	return n, nil
}

func (s *Service) release(ctx context.Context, reserved bool, editalID uint64, cpf string) {
	if !reserved || s.rdb == nil {
		return
	}
	if err := data.ReleaseNotificacao(ctx, s.rdb, editalID, cpf); err != nil {
		log.Printf("notify: release fast-path: %v", err)
	}
}
