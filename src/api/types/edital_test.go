package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(t time.Time) *time.Time { return &t }

func TestAceitaNotificacao(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusRascunho, true},
		{StatusEmBreve, true},
		{StatusAberto, false},
		{StatusEncerrado, false},
		{StatusSuspenso, false},
		{StatusCancelado, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			ed := Edital{Status: tt.status}
			assert.Equal(t, tt.want, ed.AceitaNotificacao())
		})
	}
}

func TestEstaAbertoEm(t *testing.T) {
	agora := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	antes := agora.Add(-48 * time.Hour)
	depois := agora.Add(48 * time.Hour)

	tests := []struct {
		name   string
		edital Edital
		want   bool
	}{
		{"aberto dentro da janela", Edital{Status: StatusAberto, DataAbertura: tp(antes), DataEncerramento: tp(depois)}, true},
		{"aberto sem datas", Edital{Status: StatusAberto}, true},
		{"aberto só com encerramento futuro", Edital{Status: StatusAberto, DataEncerramento: tp(depois)}, true},
		{"aberto só com abertura passada", Edital{Status: StatusAberto, DataAbertura: tp(antes)}, true},
		{"aberto antes da abertura", Edital{Status: StatusAberto, DataAbertura: tp(depois)}, false},
		{"aberto depois do encerramento", Edital{Status: StatusAberto, DataEncerramento: tp(antes)}, false},
		{"em_breve dentro da janela", Edital{Status: StatusEmBreve, DataAbertura: tp(antes), DataEncerramento: tp(depois)}, false},
		{"encerrado dentro da janela", Edital{Status: StatusEncerrado, DataAbertura: tp(antes), DataEncerramento: tp(depois)}, false},
		{"suspenso sem datas", Edital{Status: StatusSuspenso}, false},
		{"cancelado sem datas", Edital{Status: StatusCancelado}, false},
		{"rascunho sem datas", Edital{Status: StatusRascunho}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.edital.EstaAbertoEm(agora))
		})
	}
}

func TestDiasRestantesEm(t *testing.T) {
	agora := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("sem encerramento", func(t *testing.T) {
		ed := Edital{}
		assert.Nil(t, ed.DiasRestantesEm(agora))
	})

	t.Run("encerramento no passado", func(t *testing.T) {
		ed := Edital{DataEncerramento: tp(agora.Add(-time.Hour))}
		d := ed.DiasRestantesEm(agora)
		require.NotNil(t, d)
		assert.Equal(t, 0, *d)
	})

	t.Run("trunca e nao arredonda", func(t *testing.T) {
		// 2 dias e 23 horas ainda são 2 dias
		ed := Edital{DataEncerramento: tp(agora.Add(71 * time.Hour))}
		d := ed.DiasRestantesEm(agora)
		require.NotNil(t, d)
		assert.Equal(t, 2, *d)
	})

	t.Run("menos de um dia", func(t *testing.T) {
		ed := Edital{DataEncerramento: tp(agora.Add(5 * time.Hour))}
		d := ed.DiasRestantesEm(agora)
		require.NotNil(t, d)
		assert.Equal(t, 0, *d)
	})
}

func TestCor(t *testing.T) {
	assert.Equal(t, "#10b981", (&Edital{Status: StatusAberto}).Cor())
	assert.Equal(t, "#123456", (&Edital{Status: StatusAberto, CorStatus: "#123456"}).Cor())
	assert.Equal(t, "#6b7280", (&Edital{Status: "desconhecido"}).Cor())
}

func TestBeforeSavePublicacao(t *testing.T) {
	ed := Edital{Status: StatusAberto}
	require.NoError(t, ed.BeforeSave(nil))
	require.NotNil(t, ed.DataPublicacao)

	// não sobrescreve a primeira publicação
	original := *ed.DataPublicacao
	require.NoError(t, ed.BeforeSave(nil))
	assert.Equal(t, original, *ed.DataPublicacao)

	// outros status não publicam
	rascunho := Edital{Status: StatusRascunho}
	require.NoError(t, rascunho.BeforeSave(nil))
	assert.Nil(t, rascunho.DataPublicacao)
}

func TestStatusValido(t *testing.T) {
	for _, s := range []string{StatusRascunho, StatusEmBreve, StatusAberto, StatusEncerrado, StatusSuspenso, StatusCancelado} {
		assert.True(t, StatusValido(s), s)
	}
	assert.False(t, StatusValido("aberto "))
	assert.False(t, StatusValido(""))
}

func TestCPFMascarado(t *testing.T) {
	n := NotificacaoEdital{CPF: "111.444.777-35"}
	assert.Equal(t, "111.***.**35", n.CPFMascarado())

	vazio := NotificacaoEdital{}
	assert.Equal(t, "", vazio.CPFMascarado())
}
