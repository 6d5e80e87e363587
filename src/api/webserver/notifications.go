package webserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inova-hub/portal-editais/src/api/notify"
	"github.com/inova-hub/portal-editais/src/api/types"
	"github.com/inova-hub/portal-editais/src/api/validation"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Notifications struct {
	db  *gorm.DB
	svc *notify.Service
}

func NewNotifications(db *gorm.DB, rdb *redis.Client) Notifications {
	return Notifications{
		db:  db,
		svc: notify.NewService(notify.NewGormStore(db), rdb),
	}
}

// fieldFor devolve a que campo do formulário um erro pertence; vazio
// quando o erro é de nível de formulário (duplicata, elegibilidade).
func fieldFor(err error) string {
	var missing notify.MissingFieldError
	switch {
	case errors.As(err, &missing):
		return missing.Field
	case errors.Is(err, validation.ErrCPFLength),
		errors.Is(err, validation.ErrCPFPattern),
		errors.Is(err, validation.ErrCPFChecksum):
		return "cpf"
	case errors.Is(err, validation.ErrTelefoneLength):
		return "telefone_whatsapp"
	case errors.Is(err, notify.ErrInvalidEmail):
		return "email"
	case errors.Is(err, notify.ErrTermos):
		return "aceito_termos"
	}
	return ""
}

func submissionStatus(err error) int {
	switch {
	case errors.Is(err, notify.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, notify.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, notify.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func expectedSubmissionError(err error) bool {
	if fieldFor(err) != "" {
		return true
	}
	return errors.Is(err, notify.ErrNotFound) ||
		errors.Is(err, notify.ErrNotEligible) ||
		errors.Is(err, notify.ErrDuplicate)
}

func meta(c *gin.Context) notify.Meta {
	return notify.Meta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}

// Form entrega os dados que o front usa para montar o formulário.
func (h Notifications) Form(c *gin.Context) {
	var ed types.Edital
	err := h.db.First(&ed, "slug = ?", c.Param("slug")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "edital não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"edital": gin.H{
			"titulo":        ed.Titulo,
			"numero_edital": ed.NumeroEdital,
			"slug":          ed.Slug,
			"status":        ed.Status,
		},
		"aceita_notificacao": ed.AceitaNotificacao(),
	})
}

// SubmitForm processa o formulário tradicional (urlencoded). Erros de
// validação voltam por campo, como o template exibia.
func (h Notifications) SubmitForm(c *gin.Context) {
	var in notify.Input
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	n, err := h.svc.SubmitBySlug(c.Request.Context(), c.Param("slug"), in, meta(c))
	if err != nil {
		if !expectedSubmissionError(err) {
			log.Printf("notificar %s: %v", c.Param("slug"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"err": "erro ao processar sua solicitação, tente novamente"})
			return
		}
		resp := gin.H{"success": false, "message": err.Error()}
		if f := fieldFor(err); f != "" {
			resp["errors"] = gin.H{f: err.Error()}
		}
		c.JSON(submissionStatus(err), resp)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Notificação solicitada com sucesso! Você será avisado por e-mail quando o edital for lançado.",
		"cpf":     n.CPFMascarado(),
	})
}

// SubmitAJAX processa o corpo JSON do widget da home. Erros são
// agregados numa única mensagem, como o front espera.
func (h Notifications) SubmitAJAX(c *gin.Context) {
	var req struct {
		EditalID uint64 `json:"edital_id"`
		notify.Input
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "dados JSON inválidos"})
		return
	}
	if req.EditalID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ID do edital não fornecido"})
		return
	}

	n, err := h.svc.SubmitByID(c.Request.Context(), req.EditalID, req.Input, meta(c))
	if err != nil {
		if !expectedSubmissionError(err) {
			log.Printf("notificar-ajax %d: %v", req.EditalID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "erro interno do servidor"})
			return
		}
		msg := err.Error()
		if f := fieldFor(err); f != "" {
			msg = fmt.Sprintf("Dados inválidos: %s: %s", notify.FieldLabel(f), msg)
		}
		c.JSON(submissionStatus(err), gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Notificação solicitada com sucesso! Você será avisado por e-mail quando o edital for lançado.",
		"cpf":     n.CPFMascarado(),
	})
}

// AdminList lista os pedidos de um edital com o CPF mascarado.
func (h Notifications) AdminList(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "id inválido"})
		return
	}
	var ed types.Edital
	if err := h.db.First(&ed, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "edital não encontrado"})
		return
	}

	var notificacoes []types.NotificacaoEdital
	if err := h.db.Where("edital_id = ?", id).
		Order("data_solicitacao desc").Find(&notificacoes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}

	pendentes := 0
	out := make([]gin.H, 0, len(notificacoes))
	for i := range notificacoes {
		n := &notificacoes[i]
		if !n.Notificado {
			pendentes++
		}
		out = append(out, gin.H{
			"id":                n.ID,
			"cpf":               n.CPFMascarado(),
			"nome_completo":     n.NomeCompleto,
			"email":             n.Email,
			"telefone_whatsapp": n.TelefoneWhatsapp,
			"data_solicitacao":  n.DataSolicitacao,
			"notificado":        n.Notificado,
			"data_notificacao":  n.DataNotificacao,
			"ip_endereco":       n.IPEndereco,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"edital":       gin.H{"id": ed.ID, "titulo": ed.Titulo, "slug": ed.Slug},
		"notificacoes": out,
		"total":        len(out),
		"pendentes":    pendentes,
	})
}

// MarcarNotificado registra o envio manual do aviso pelo operador.
func (h Notifications) MarcarNotificado(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "id inválido"})
		return
	}
	var n types.NotificacaoEdital
	if err := h.db.First(&n, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "notificação não encontrada"})
		return
	}
	if n.Notificado {
		c.JSON(http.StatusOK, gin.H{"success": true, "notificado": true})
		return
	}

	now := time.Now()
	if err := h.db.Model(&n).Updates(map[string]interface{}{
		"notificado":       true,
		"data_notificacao": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "notificado": true, "data_notificacao": now})
}
