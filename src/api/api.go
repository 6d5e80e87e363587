package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inova-hub/portal-editais/src/api/config"
	"github.com/inova-hub/portal-editais/src/api/data"
	"github.com/inova-hub/portal-editais/src/api/types"
	"github.com/inova-hub/portal-editais/src/api/webserver"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var allModels = []interface{}{
	&types.CategoriaEdital{}, &types.AreaInteresse{},
	&types.Edital{}, &types.NotificacaoEdital{}, &types.AnexoEdital{},
	&types.AdminUser{}, &types.Setting{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func seedSettings(db *gorm.DB) {
	defaults := map[string]string{
		data.SettingSiteNome:     "Hub de Inovação",
		data.SettingContatoEmail: "contato@hub.inova.gov.br",
		data.SettingQuemSomos:    "",
		data.SettingOndeAtuamos:  "",
	}
	for name, value := range defaults {
		var s types.Setting
		_ = db.Where(types.Setting{Name: name}).
			Attrs(types.Setting{Value: value}).
			FirstOrCreate(&s).Error
	}
}

// seedAdmin cria o primeiro operador quando a tabela está vazia e a
// senha inicial foi informada no ambiente.
func seedAdmin(db *gorm.DB, username, password string) {
	var n int64
	db.Model(&types.AdminUser{}).Count(&n)
	if n > 0 || password == "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := db.Create(&types.AdminUser{
		Username:  username,
		SenhaHash: string(hash),
		Nome:      "Administrador",
		Ativo:     true,
	}).Error; err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("admin inicial %q criado", username)
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)
	seedSettings(db)
	seedAdmin(db, cfg.AdminUser, cfg.AdminPassword)
	if err := data.LoadSettings(db); err != nil {
		log.Fatalf("settings: %v", err)
	}

	rdb := data.MustRedis(cfg.RedisURL)

	router := webserver.New(cfg, db, rdb)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("portal-editais API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
