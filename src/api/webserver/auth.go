package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inova-hub/portal-editais/src/api/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Auth struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuth(db *gorm.DB, secret []byte) Auth {
	return Auth{db: db, jwtSecret: secret}
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var user types.AdminUser
	if err := a.db.First(&user, "username = ? AND ativo = true", req.Username).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "credenciais inválidas"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "credenciais inválidas"})
		return
	}

	token, err := issueJWT(user.Username, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "nome": user.Nome})
}
