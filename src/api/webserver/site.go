package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inova-hub/portal-editais/src/api/data"
)

// Site serve o conteúdo institucional do portal (nome, contato e as
// páginas "quem somos" / "onde atuamos") a partir do cache de settings.
type Site struct {
	lookup func(name string) string
}

func NewSite(lookup func(name string) string) Site {
	return Site{lookup: lookup}
}

func (s Site) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"site_nome":     s.lookup(data.SettingSiteNome),
		"contato_email": s.lookup(data.SettingContatoEmail),
		"quem_somos":    s.lookup(data.SettingQuemSomos),
		"onde_atuamos":  s.lookup(data.SettingOndeAtuamos),
	})
}
