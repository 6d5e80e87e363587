package webserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inova-hub/portal-editais/src/api/slug"
	"github.com/inova-hub/portal-editais/src/api/types"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

type Editais struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

func NewEditais(db *gorm.DB) Editais {
	// A descrição completa vem de um editor rich-text do painel.
	return Editais{db: db, sanitizer: bluemonday.UGCPolicy()}
}

// editalView anexa os campos derivados que as listagens exibem.
func editalView(e *types.Edital) gin.H {
	return gin.H{
		"id":                 e.ID,
		"titulo":             e.Titulo,
		"numero_edital":      e.NumeroEdital,
		"slug":               e.Slug,
		"subtitulo":          e.Subtitulo,
		"categoria":          e.Categoria,
		"areas":              e.Areas,
		"modalidade":         e.Modalidade,
		"status":             e.Status,
		"status_display":     types.StatusLabel(e.Status),
		"cor_status":         e.Cor(),
		"destaque":           e.Destaque,
		"data_publicacao":    e.DataPublicacao,
		"data_abertura":      e.DataAbertura,
		"data_encerramento":  e.DataEncerramento,
		"numero_desafios":    e.NumeroDesafios,
		"valor_premio":       e.ValorPremio,
		"visualizacoes":      e.Visualizacoes,
		"esta_aberto":        e.EstaAberto(),
		"aceita_notificacao": e.AceitaNotificacao(),
		"dias_restantes":     e.DiasRestantes(),
	}
}

// List atende a vitrine pública: tudo menos rascunho, destaques primeiro.
func (h Editais) List(c *gin.Context) {
	q := h.db.Preload("Categoria").Preload("Areas").
		Where("status <> ?", types.StatusRascunho)

	if cat := c.Query("categoria"); cat != "" {
		q = q.Joins("JOIN categorias_editais ON categorias_editais.id = editais.categoria_id").
			Where("categorias_editais.slug = ?", cat)
	}
	if status := c.Query("status"); status != "" && types.StatusValido(status) {
		q = q.Where("editais.status = ?", status)
	}

	var editais []types.Edital
	if err := q.Order("destaque desc, created_at desc").Find(&editais).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}

	out := make([]gin.H, 0, len(editais))
	for i := range editais {
		out = append(out, editalView(&editais[i]))
	}
	c.JSON(http.StatusOK, gin.H{"editais": out})
}

func (h Editais) Detail(c *gin.Context) {
	var ed types.Edital
	err := h.db.Preload("Categoria").Preload("Areas").
		Preload("Anexos", func(db *gorm.DB) *gorm.DB { return db.Where("ativo = true").Order("ordem") }).
		First(&ed, "slug = ?", c.Param("slug")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "edital não encontrado"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}

	// Contador monotônico; não passa pelos hooks de save.
	h.db.Model(&ed).UpdateColumn("visualizacoes", gorm.Expr("visualizacoes + ?", 1))
	ed.Visualizacoes++

	view := editalView(&ed)
	view["descricao_completa"] = ed.DescricaoCompleta
	view["link_inscricao"] = ed.LinkInscricao
	view["link_mais_informacoes"] = ed.LinkMaisInformacoes
	view["anexos"] = ed.Anexos
	c.JSON(http.StatusOK, view)
}

type editalForm struct {
	Titulo              string   `json:"titulo" binding:"required"`
	NumeroEdital        string   `json:"numero_edital" binding:"required"`
	Subtitulo           string   `json:"subtitulo"`
	DescricaoCompleta   string   `json:"descricao_completa"`
	CategoriaID         uint32   `json:"categoria_id" binding:"required"`
	Modalidade          string   `json:"modalidade"`
	Status              string   `json:"status"`
	DataAbertura        *string  `json:"data_abertura"`
	DataEncerramento    *string  `json:"data_encerramento"`
	NumeroDesafios      *uint32  `json:"numero_desafios"`
	ValorPremio         *float64 `json:"valor_premio"`
	LinkInscricao       string   `json:"link_inscricao"`
	LinkMaisInformacoes string   `json:"link_mais_informacoes"`
	Destaque            bool     `json:"destaque"`
	CorStatus           string   `json:"cor_status"`
	Areas               []uint32 `json:"areas"`
}

func parseDataOpcional(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// datasValidas confere a janela: encerramento obrigatório e, se houver
// abertura, anterior ao encerramento.
func datasValidas(abertura, encerramento *time.Time) error {
	if encerramento == nil {
		return errors.New("data de encerramento é obrigatória")
	}
	if abertura != nil && !abertura.Before(*encerramento) {
		return errors.New("data de abertura deve ser anterior ao encerramento")
	}
	return nil
}

func (h Editais) uniqueSlug(titulo string, excludeID uint64) string {
	base := slug.Make(titulo)
	s := base
	for i := 1; ; i++ {
		var n int64
		h.db.Model(&types.Edital{}).
			Where("slug = ? AND id <> ?", s, excludeID).Count(&n)
		if n == 0 {
			return s
		}
		s = fmt.Sprintf("%s-%d", base, i)
	}
}

func (h Editais) AdminCreate(c *gin.Context) {
	var req editalForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = types.StatusRascunho
	}
	if !types.StatusValido(status) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "status inválido"})
		return
	}

	abertura, err := parseDataOpcional(req.DataAbertura)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "data_abertura inválida"})
		return
	}
	encerramento, err := parseDataOpcional(req.DataEncerramento)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "data_encerramento inválida"})
		return
	}
	if err := datasValidas(abertura, encerramento); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": err.Error()})
		return
	}

	var categoria types.CategoriaEdital
	if err := h.db.First(&categoria, "id = ? AND ativo = true", req.CategoriaID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "categoria não encontrada"})
		return
	}

	modalidade := req.Modalidade
	if modalidade == "" {
		modalidade = "fomento"
	}

	ed := types.Edital{
		Titulo:              req.Titulo,
		NumeroEdital:        req.NumeroEdital,
		Slug:                h.uniqueSlug(req.Titulo, 0),
		Subtitulo:           req.Subtitulo,
		DescricaoCompleta:   h.sanitizer.Sanitize(req.DescricaoCompleta),
		CategoriaID:         req.CategoriaID,
		Modalidade:          modalidade,
		Status:              status,
		DataAbertura:        abertura,
		DataEncerramento:    encerramento,
		NumeroDesafios:      req.NumeroDesafios,
		ValorPremio:         req.ValorPremio,
		LinkInscricao:       req.LinkInscricao,
		LinkMaisInformacoes: req.LinkMaisInformacoes,
		Destaque:            req.Destaque,
		CorStatus:           req.CorStatus,
		CriadoPor:           c.GetString("user"),
	}
	if err := h.db.Create(&ed).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"err": "número de edital já cadastrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	h.setAreas(&ed, req.Areas)

	c.JSON(http.StatusCreated, gin.H{"id": ed.ID, "slug": ed.Slug})
}

func (h Editais) setAreas(ed *types.Edital, ids []uint32) {
	if ids == nil {
		return
	}
	var areas []types.AreaInteresse
	if len(ids) > 0 {
		h.db.Find(&areas, "id IN ? AND ativo = true", ids)
	}
	if err := h.db.Model(ed).Association("Areas").Replace(areas); err != nil {
		log.Printf("editais: set areas: %v", err)
	}
}

func (h Editais) AdminList(c *gin.Context) {
	q := h.db.Model(&types.Edital{}).Preload("Categoria").Preload("Areas")

	if busca := c.Query("busca"); busca != "" {
		like := "%" + busca + "%"
		q = q.Where("titulo LIKE ? OR numero_edital LIKE ? OR subtitulo LIKE ?", like, like, like)
	}
	if cat := c.Query("categoria"); cat != "" {
		q = q.Where("categoria_id = ?", cat)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	// Ordenações permitidas; default espelha a listagem do painel.
	ordenacao := c.DefaultQuery("ordenacao", "created_at desc")
	switch ordenacao {
	case "created_at desc", "created_at asc", "titulo asc", "titulo desc",
		"data_encerramento asc", "data_encerramento desc", "visualizacoes desc":
	default:
		ordenacao = "created_at desc"
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	const perPage = 15

	// Count e Find partem de sessões separadas; reaproveitar a mesma
	// cadeia depois de um finalizador carrega estado de statement.
	var total int64
	q.Session(&gorm.Session{}).Count(&total)

	var editais []types.Edital
	if err := q.Session(&gorm.Session{}).Order(ordenacao).Limit(perPage).Offset((page - 1) * perPage).
		Find(&editais).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}

	out := make([]gin.H, 0, len(editais))
	for i := range editais {
		out = append(out, editalView(&editais[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"editais": out,
		"total":   total,
		"page":    page,
		"pages":   (total + perPage - 1) / perPage,
	})
}

func (h Editais) adminEdital(c *gin.Context) (*types.Edital, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "id inválido"})
		return nil, false
	}
	var ed types.Edital
	err = h.db.Preload("Categoria").Preload("Areas").First(&ed, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "edital não encontrado"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return nil, false
	}
	return &ed, true
}

func (h Editais) AdminGet(c *gin.Context) {
	ed, ok := h.adminEdital(c)
	if !ok {
		return
	}
	view := editalView(ed)
	view["descricao_completa"] = ed.DescricaoCompleta
	view["link_inscricao"] = ed.LinkInscricao
	view["link_mais_informacoes"] = ed.LinkMaisInformacoes
	view["criado_por"] = ed.CriadoPor
	c.JSON(http.StatusOK, view)
}

func (h Editais) AdminUpdate(c *gin.Context) {
	ed, ok := h.adminEdital(c)
	if !ok {
		return
	}

	var req editalForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.Status != "" && !types.StatusValido(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "status inválido"})
		return
	}

	abertura, err := parseDataOpcional(req.DataAbertura)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "data_abertura inválida"})
		return
	}
	encerramento, err := parseDataOpcional(req.DataEncerramento)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "data_encerramento inválida"})
		return
	}
	if err := datasValidas(abertura, encerramento); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"err": err.Error()})
		return
	}

	ed.Titulo = req.Titulo
	ed.NumeroEdital = req.NumeroEdital
	ed.Subtitulo = req.Subtitulo
	ed.DescricaoCompleta = h.sanitizer.Sanitize(req.DescricaoCompleta)
	ed.CategoriaID = req.CategoriaID
	if req.Modalidade != "" {
		ed.Modalidade = req.Modalidade
	}
	if req.Status != "" {
		ed.Status = req.Status
	}
	ed.DataAbertura = abertura
	ed.DataEncerramento = encerramento
	ed.NumeroDesafios = req.NumeroDesafios
	ed.ValorPremio = req.ValorPremio
	ed.LinkInscricao = req.LinkInscricao
	ed.LinkMaisInformacoes = req.LinkMaisInformacoes
	ed.Destaque = req.Destaque
	ed.CorStatus = req.CorStatus

	if err := h.db.Save(ed).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"err": "número de edital já cadastrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	h.setAreas(ed, req.Areas)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h Editais) AdminDelete(c *gin.Context) {
	ed, ok := h.adminEdital(c)
	if !ok {
		return
	}
	log.Printf("admin %s removendo edital %d (%s)", c.GetString("user"), ed.ID, ed.NumeroEdital)
	if err := h.db.Select("Notificacoes", "Anexos", "Areas").Delete(ed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AlterarStatus é o toggle AJAX do painel. A mudança é um override do
// operador: nenhuma checagem de janela temporal acontece aqui.
func (h Editais) AlterarStatus(c *gin.Context) {
	ed, ok := h.adminEdital(c)
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !types.StatusValido(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "status inválido"})
		return
	}

	ed.Status = req.Status
	if err := h.db.Save(ed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "erro interno"})
		return
	}
	log.Printf("admin %s alterou status do edital %d para %s", c.GetString("user"), ed.ID, req.Status)

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"message":             fmt.Sprintf("Status alterado para %q", types.StatusLabel(ed.Status)),
		"novo_status":         ed.Status,
		"novo_status_display": types.StatusLabel(ed.Status),
		"cor_status":          ed.Cor(),
	})
}

func (h Editais) ToggleDestaque(c *gin.Context) {
	ed, ok := h.adminEdital(c)
	if !ok {
		return
	}
	ed.Destaque = !ed.Destaque
	if err := h.db.Model(ed).Update("destaque", ed.Destaque).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "erro interno"})
		return
	}
	msg := "Destaque desativado"
	if ed.Destaque {
		msg = "Destaque ativado"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg, "destaque": ed.Destaque})
}
