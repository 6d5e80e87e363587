package notify

import (
	"context"
	"errors"

	"github.com/inova-hub/portal-editais/src/api/types"
	"gorm.io/gorm"
)

// Store é o contrato de persistência do fluxo de submissão.
type Store interface {
	EditalBySlug(ctx context.Context, slug string) (*types.Edital, error)
	EditalByID(ctx context.Context, id uint64) (*types.Edital, error)
	NotificacaoExists(ctx context.Context, editalID uint64, cpf string) (bool, error)
	// CreateNotificacao deve devolver ErrDuplicate quando o banco
	// rejeitar a chave única (edital_id, cpf).
	CreateNotificacao(ctx context.Context, n *types.NotificacaoEdital) error
}

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return gormStore{db: db}
}

func (s gormStore) EditalBySlug(ctx context.Context, slug string) (*types.Edital, error) {
	var ed types.Edital
	err := s.db.WithContext(ctx).First(&ed, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ed, nil
}

func (s gormStore) EditalByID(ctx context.Context, id uint64) (*types.Edital, error) {
	var ed types.Edital
	err := s.db.WithContext(ctx).First(&ed, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ed, nil
}

func (s gormStore) NotificacaoExists(ctx context.Context, editalID uint64, cpf string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&types.NotificacaoEdital{}).
		Where("edital_id = ? AND cpf = ?", editalID, cpf).Count(&n).Error
	return n > 0, err
}

func (s gormStore) CreateNotificacao(ctx context.Context, n *types.NotificacaoEdital) error {
	err := s.db.WithContext(ctx).Create(n).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
