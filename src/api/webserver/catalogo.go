package webserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inova-hub/portal-editais/src/api/slug"
	"github.com/inova-hub/portal-editais/src/api/types"
	"gorm.io/gorm"
)

// Catalogo cobre o CRUD pequeno do painel: categorias, áreas de
// interesse e anexos de edital.
type Catalogo struct {
	db *gorm.DB
}

func NewCatalogo(db *gorm.DB) Catalogo {
	return Catalogo{db: db}
}

func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "id inválido"})
		return 0, false
	}
	return id, true
}

// ----- categorias -----

type categoriaForm struct {
	Nome      string `json:"nome" binding:"required"`
	Cor       string `json:"cor"`
	Icone     string `json:"icone"`
	Descricao string `json:"descricao"`
	Ativo     *bool  `json:"ativo"`
}

func (h Catalogo) ListCategorias(c *gin.Context) {
	var categorias []types.CategoriaEdital
	if err := h.db.Order("nome").Find(&categorias).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categorias": categorias})
}

func (h Catalogo) CreateCategoria(c *gin.Context) {
	var req categoriaForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	cat := types.CategoriaEdital{
		Nome:      req.Nome,
		Slug:      slug.Make(req.Nome),
		Cor:       req.Cor,
		Icone:     req.Icone,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	if err := h.db.Create(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"err": "categoria já cadastrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": cat.ID, "slug": cat.Slug})
}

func (h Catalogo) UpdateCategoria(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var cat types.CategoriaEdital
	if err := h.db.First(&cat, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "categoria não encontrada"})
		return
	}
	var req categoriaForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	cat.Nome = req.Nome
	if req.Cor != "" {
		cat.Cor = req.Cor
	}
	if req.Icone != "" {
		cat.Icone = req.Icone
	}
	cat.Descricao = req.Descricao
	if req.Ativo != nil {
		cat.Ativo = *req.Ativo
	}
	if err := h.db.Save(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Catalogo) DeleteCategoria(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	// Categoria em uso não sai; o painel desativa em vez de excluir.
	var emUso int64
	h.db.Model(&types.Edital{}).Where("categoria_id = ?", id).Count(&emUso)
	if emUso > 0 {
		c.JSON(http.StatusConflict, gin.H{"err": "categoria em uso por editais"})
		return
	}
	if err := h.db.Delete(&types.CategoriaEdital{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ----- áreas de interesse -----

func (h Catalogo) ListAreas(c *gin.Context) {
	var areas []types.AreaInteresse
	if err := h.db.Order("nome").Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

func (h Catalogo) CreateArea(c *gin.Context) {
	var req categoriaForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	area := types.AreaInteresse{
		Nome:      req.Nome,
		Cor:       req.Cor,
		Icone:     req.Icone,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	if err := h.db.Create(&area).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"err": "área já cadastrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": area.ID})
}

func (h Catalogo) UpdateArea(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var area types.AreaInteresse
	if err := h.db.First(&area, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "área não encontrada"})
		return
	}
	var req categoriaForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	area.Nome = req.Nome
	if req.Cor != "" {
		area.Cor = req.Cor
	}
	if req.Icone != "" {
		area.Icone = req.Icone
	}
	area.Descricao = req.Descricao
	if req.Ativo != nil {
		area.Ativo = *req.Ativo
	}
	if err := h.db.Save(&area).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Catalogo) DeleteArea(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var area types.AreaInteresse
	if err := h.db.First(&area, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "área não encontrada"})
		return
	}
	h.db.Exec("DELETE FROM edital_areas WHERE area_interesse_id = ?", area.ID)
	if err := h.db.Delete(&area).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ----- anexos -----

type anexoForm struct {
	Titulo  string `json:"titulo" binding:"required"`
	Arquivo string `json:"arquivo" binding:"required"`
	Ordem   uint16 `json:"ordem"`
}

func (h Catalogo) ListAnexos(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var anexos []types.AnexoEdital
	if err := h.db.Where("edital_id = ?", id).Order("ordem").Find(&anexos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"anexos": anexos})
}

func (h Catalogo) CreateAnexo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var ed types.Edital
	if err := h.db.First(&ed, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "edital não encontrado"})
		return
	}
	var req anexoForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	anexo := types.AnexoEdital{
		EditalID: ed.ID,
		Titulo:   req.Titulo,
		Arquivo:  req.Arquivo,
		Ordem:    req.Ordem,
		Ativo:    true,
	}
	if err := h.db.Create(&anexo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": anexo.ID})
}

func (h Catalogo) UpdateAnexo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var anexo types.AnexoEdital
	if err := h.db.First(&anexo, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "anexo não encontrado"})
		return
	}
	var req anexoForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	anexo.Titulo = req.Titulo
	anexo.Arquivo = req.Arquivo
	anexo.Ordem = req.Ordem
	if err := h.db.Save(&anexo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Catalogo) DeleteAnexo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.db.Delete(&types.AnexoEdital{}, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Catalogo) ToggleAnexoAtivo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var anexo types.AnexoEdital
	if err := h.db.First(&anexo, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "anexo não encontrado"})
		return
	}
	anexo.Ativo = !anexo.Ativo
	if err := h.db.Model(&anexo).Update("ativo", anexo.Ativo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "ativo": anexo.Ativo})
}
