package data

import (
	"sync"

	"github.com/inova-hub/portal-editais/src/api/types"
	"gorm.io/gorm"
)

// Chaves fixas do conteúdo "singleton" do site (quem somos, contato).
// Uma linha por chave em vez de um model exclusivo por página. Servidas
// em GET /site-info e editadas em PUT /v1/admin/settings.
const (
	SettingSiteNome     = "site_nome"
	SettingContatoEmail = "contato_email"
	SettingQuemSomos    = "quem_somos"
	SettingOndeAtuamos  = "onde_atuamos"
)

var (
	settingsCache map[string]string
	settingsMu    sync.RWMutex
)

// LoadSettings carrega todas as settings do banco para o cache.
func LoadSettings(db *gorm.DB) error {
	var settings []types.Setting
	if err := db.Find(&settings).Error; err != nil {
		return err
	}

	settingsMu.Lock()
	defer settingsMu.Unlock()

	settingsCache = make(map[string]string)
	for _, s := range settings {
		settingsCache[s.Name] = s.Value
	}

	return nil
}

// GetSetting lê do cache (LoadSettings precisa ter rodado antes).
func GetSetting(name string) string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settingsCache[name]
}

// RefreshSettings recarrega o cache depois de uma edição no painel.
func RefreshSettings(db *gorm.DB) error {
	return LoadSettings(db)
}
