package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inova-hub/portal-editais/src/api/data"
	"github.com/inova-hub/portal-editais/src/api/types"
	"gorm.io/gorm"
)

type Admin struct {
	db *gorm.DB
}

func NewAdmin(db *gorm.DB) Admin {
	return Admin{db: db}
}

type statusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// Dashboard agrega os números que o painel mostra na entrada.
func (a Admin) Dashboard(c *gin.Context) {
	var totalEditais, abertos, rascunhos, totalNotificacoes int64
	a.db.Model(&types.Edital{}).Count(&totalEditais)
	a.db.Model(&types.Edital{}).Where("status = ?", types.StatusAberto).Count(&abertos)
	a.db.Model(&types.Edital{}).Where("status = ?", types.StatusRascunho).Count(&rascunhos)
	a.db.Model(&types.NotificacaoEdital{}).Count(&totalNotificacoes)

	var porStatus []statusCount
	a.db.Model(&types.Edital{}).
		Select("status, count(*) as total").
		Group("status").Order("status").
		Scan(&porStatus)

	var recentes []types.Edital
	a.db.Preload("Categoria").Order("created_at desc").Limit(5).Find(&recentes)
	recentesOut := make([]gin.H, 0, len(recentes))
	for i := range recentes {
		recentesOut = append(recentesOut, editalView(&recentes[i]))
	}

	var notificacoes []types.NotificacaoEdital
	a.db.Preload("Edital").Order("data_solicitacao desc").Limit(10).Find(&notificacoes)
	notifOut := make([]gin.H, 0, len(notificacoes))
	for i := range notificacoes {
		n := &notificacoes[i]
		notifOut = append(notifOut, gin.H{
			"id":               n.ID,
			"cpf":              n.CPFMascarado(),
			"email":            n.Email,
			"edital":           n.Edital.Titulo,
			"data_solicitacao": n.DataSolicitacao,
			"notificado":       n.Notificado,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_editais":         totalEditais,
		"editais_abertos":       abertos,
		"editais_rascunho":      rascunhos,
		"total_notificacoes":    totalNotificacoes,
		"editais_por_status":    porStatus,
		"editais_recentes":      recentesOut,
		"notificacoes_recentes": notifOut,
	})
}

var settingKeys = map[string]bool{
	data.SettingSiteNome:     true,
	data.SettingContatoEmail: true,
	data.SettingQuemSomos:    true,
	data.SettingOndeAtuamos:  true,
}

// AtualizarSettings grava as chaves de conteúdo do site e recarrega o
// cache que as rotas públicas servem.
func (a Admin) AtualizarSettings(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil || len(req) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "corpo inválido"})
		return
	}
	for name := range req {
		if !settingKeys[name] {
			c.JSON(http.StatusBadRequest, gin.H{"err": "configuração desconhecida: " + name})
			return
		}
	}
	for name, value := range req {
		var s types.Setting
		if err := a.db.Where(types.Setting{Name: name}).
			Assign(map[string]interface{}{"value": value}).
			FirstOrCreate(&s).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
			return
		}
	}
	if err := data.RefreshSettings(a.db); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
