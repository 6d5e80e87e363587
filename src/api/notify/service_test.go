package notify

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/inova-hub/portal-editais/src/api/types"
	"github.com/inova-hub/portal-editais/src/api/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore guarda tudo em memória e reproduz a chave única
// (edital_id, cpf) do banco, inclusive sob concorrência.
type fakeStore struct {
	mu       sync.Mutex
	editais  map[uint64]*types.Edital
	rows     []*types.NotificacaoEdital
	existsFn func(editalID uint64, cpf string) (bool, error) // override opcional
	nextID   uint64
}

func newFakeStore(editais ...*types.Edital) *fakeStore {
	s := &fakeStore{editais: map[uint64]*types.Edital{}}
	for _, e := range editais {
		s.editais[e.ID] = e
	}
	return s
}

func (s *fakeStore) EditalBySlug(_ context.Context, slug string) (*types.Edital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.editais {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (s *fakeStore) EditalByID(_ context.Context, id uint64) (*types.Edital, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.editais[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}

func (s *fakeStore) NotificacaoExists(_ context.Context, editalID uint64, cpf string) (bool, error) {
	if s.existsFn != nil {
		return s.existsFn(editalID, cpf)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.has(editalID, cpf), nil
}

func (s *fakeStore) has(editalID uint64, cpf string) bool {
	for _, r := range s.rows {
		if r.EditalID == editalID && r.CPF == cpf {
			return true
		}
	}
	return false
}

func (s *fakeStore) CreateNotificacao(_ context.Context, n *types.NotificacaoEdital) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.has(n.EditalID, n.CPF) {
		return ErrDuplicate
	}
	s.nextID++
	n.ID = s.nextID
	s.rows = append(s.rows, n)
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func emBreve() *types.Edital {
	return &types.Edital{ID: 1, Slug: "edital-001-2025", Status: types.StatusEmBreve}
}

func validInput() Input {
	return Input{
		CPF:              "11144477735",
		NomeCompleto:     "Maria da Silva",
		Email:            "maria@example.com",
		TelefoneWhatsapp: "22999991234",
		AceitoTermos:     true,
	}
}

func TestSubmitSuccess(t *testing.T) {
	store := newFakeStore(emBreve())
	svc := NewService(store, nil)

	n, err := svc.SubmitBySlug(context.Background(), "edital-001-2025", validInput(),
		Meta{IP: "10.0.0.1", UserAgent: "curl/8"})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), n.EditalID)
	assert.Equal(t, "111.444.777-35", n.CPF)
	assert.Equal(t, "111.***.**35", n.CPFMascarado())
	assert.Equal(t, "(22) 99999-1234", n.TelefoneWhatsapp)
	assert.Equal(t, "Maria da Silva", n.NomeCompleto)
	assert.Equal(t, "10.0.0.1", n.IPEndereco)
	assert.Equal(t, "curl/8", n.UserAgent)
	assert.False(t, n.Notificado)
	assert.Equal(t, 1, store.count())
}

func TestSubmitTelefoneOpcional(t *testing.T) {
	store := newFakeStore(emBreve())
	svc := NewService(store, nil)

	in := validInput()
	in.TelefoneWhatsapp = ""
	n, err := svc.SubmitBySlug(context.Background(), "edital-001-2025", in, Meta{})
	require.NoError(t, err)
	assert.Empty(t, n.TelefoneWhatsapp)
}

func TestSubmitEditalNaoEncontrado(t *testing.T) {
	svc := NewService(newFakeStore(), nil)

	_, err := svc.SubmitBySlug(context.Background(), "nao-existe", validInput(), Meta{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.SubmitByID(context.Background(), 42, validInput(), Meta{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitElegibilidade(t *testing.T) {
	tests := []struct {
		status string
		aceita bool
	}{
		{types.StatusRascunho, true},
		{types.StatusEmBreve, true},
		{types.StatusAberto, false},
		{types.StatusEncerrado, false},
		{types.StatusSuspenso, false},
		{types.StatusCancelado, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			store := newFakeStore(&types.Edital{ID: 1, Slug: "x", Status: tt.status})
			svc := NewService(store, nil)
			_, err := svc.SubmitByID(context.Background(), 1, validInput(), Meta{})
			if tt.aceita {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrNotEligible)
				assert.Equal(t, 0, store.count())
			}
		})
	}
}

func TestSubmitCamposObrigatorios(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Input)
		field string
	}{
		{"nome em branco", func(in *Input) { in.NomeCompleto = "  " }, "nome_completo"},
		{"email em branco", func(in *Input) { in.Email = "" }, "email"},
		{"cpf em branco", func(in *Input) { in.CPF = "" }, "cpf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(emBreve())
			svc := NewService(store, nil)
			in := validInput()
			tt.mut(&in)

			_, err := svc.SubmitByID(context.Background(), 1, in, Meta{})
			var missing MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.field, missing.Field)
			assert.Equal(t, 0, store.count())
		})
	}
}

func TestSubmitPrimeiroCampoFaltante(t *testing.T) {
	svc := NewService(newFakeStore(emBreve()), nil)
	_, err := svc.SubmitByID(context.Background(), 1, Input{AceitoTermos: true}, Meta{})
	var missing MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "nome_completo", missing.Field)
}

func TestSubmitValidacoes(t *testing.T) {
	tests := []struct {
		name    string
		mut     func(*Input)
		wantErr error
	}{
		{"termos nao aceitos", func(in *Input) { in.AceitoTermos = false }, ErrTermos},
		{"email sem arroba", func(in *Input) { in.Email = "maria.example.com" }, ErrInvalidEmail},
		{"email sem ponto", func(in *Input) { in.Email = "maria@example" }, ErrInvalidEmail},
		{"cpf curto", func(in *Input) { in.CPF = "123" }, validation.ErrCPFLength},
		{"cpf repetido", func(in *Input) { in.CPF = "00000000000" }, validation.ErrCPFPattern},
		{"cpf checksum", func(in *Input) { in.CPF = "11144477736" }, validation.ErrCPFChecksum},
		{"telefone curto", func(in *Input) { in.TelefoneWhatsapp = "123" }, validation.ErrTelefoneLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(emBreve())
			svc := NewService(store, nil)
			in := validInput()
			tt.mut(&in)

			_, err := svc.SubmitByID(context.Background(), 1, in, Meta{})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, store.count())
		})
	}
}

func TestSubmitDuplicataSequencial(t *testing.T) {
	store := newFakeStore(emBreve())
	svc := NewService(store, nil)
	ctx := context.Background()

	_, err := svc.SubmitByID(ctx, 1, validInput(), Meta{})
	require.NoError(t, err)

	_, err = svc.SubmitByID(ctx, 1, validInput(), Meta{})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, store.count())

	// CPF igual com pontuação diferente continua sendo duplicata
	in := validInput()
	in.CPF = "111.444.777-35"
	_, err = svc.SubmitByID(ctx, 1, in, Meta{})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, store.count())
}

func TestSubmitMesmoCPFEditaisDiferentes(t *testing.T) {
	store := newFakeStore(
		&types.Edital{ID: 1, Slug: "a", Status: types.StatusEmBreve},
		&types.Edital{ID: 2, Slug: "b", Status: types.StatusEmBreve},
	)
	svc := NewService(store, nil)
	ctx := context.Background()

	_, err := svc.SubmitByID(ctx, 1, validInput(), Meta{})
	require.NoError(t, err)
	_, err = svc.SubmitByID(ctx, 2, validInput(), Meta{})
	require.NoError(t, err)
	assert.Equal(t, 2, store.count())
}

// A pré-checagem pode passar para duas submissões simultâneas; a chave
// única do armazenamento decide, e o conflito volta como ErrDuplicate.
func TestSubmitConstraintAutoritativa(t *testing.T) {
	store := newFakeStore(emBreve())
	store.existsFn = func(uint64, string) (bool, error) { return false, nil }
	svc := NewService(store, nil)
	ctx := context.Background()

	_, err := svc.SubmitByID(ctx, 1, validInput(), Meta{})
	require.NoError(t, err)

	_, err = svc.SubmitByID(ctx, 1, validInput(), Meta{})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, store.count())
}

func TestSubmitDuplicataConcorrente(t *testing.T) {
	store := newFakeStore(emBreve())
	svc := NewService(store, nil)

	const workers = 32
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitByID(context.Background(), 1, validInput(), Meta{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	success, duplicates := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			success++
		case assert.ErrorIs(t, err, ErrDuplicate):
			duplicates++
		}
	}
	assert.Equal(t, 1, success, "exactly one submission may win")
	assert.Equal(t, workers-1, duplicates)
	assert.Equal(t, 1, store.count())
}

func TestSubmitErroDeStore(t *testing.T) {
	store := newFakeStore(emBreve())
	store.existsFn = func(uint64, string) (bool, error) {
		return false, fmt.Errorf("connection refused")
	}
	svc := NewService(store, nil)

	_, err := svc.SubmitByID(context.Background(), 1, validInput(), Meta{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 0, store.count())
}
