package types

import "time"

// Categorias dos editais (Startups, Aceleração, Fomento, ...)
type CategoriaEdital struct {
	ID        uint32 `gorm:"primaryKey" json:"id"`
	Nome      string `gorm:"size:50;unique;not null" json:"nome"`
	Slug      string `gorm:"size:50;unique;not null" json:"slug"`
	Cor       string `gorm:"size:7;default:'#3b82f6'" json:"cor"`
	Icone     string `gorm:"size:50;default:'fas fa-file-alt'" json:"icone"`
	Descricao string `gorm:"type:text" json:"descricao"`
	Ativo     bool   `gorm:"default:true" json:"ativo"`
}

func (CategoriaEdital) TableName() string { return "categorias_editais" }

// Áreas temáticas, ligadas aos editais por M2M
type AreaInteresse struct {
	ID        uint32 `gorm:"primaryKey" json:"id"`
	Nome      string `gorm:"size:50;unique;not null" json:"nome"`
	Cor       string `gorm:"size:7;default:'#3b82f6'" json:"cor"`
	Icone     string `gorm:"size:50;default:'fas fa-circle'" json:"icone"`
	Descricao string `gorm:"type:text" json:"descricao"`
	Ativo     bool   `gorm:"default:true" json:"ativo"`
}

func (AreaInteresse) TableName() string { return "areas_interesse" }

// Edital: uma oportunidade de fomento/chamada pública
type Edital struct {
	ID                  uint64     `gorm:"primaryKey" json:"id"`
	Titulo              string     `gorm:"size:200;not null" json:"titulo"`
	NumeroEdital        string     `gorm:"size:50;unique;not null" json:"numero_edital"`
	Slug                string     `gorm:"size:200;unique;not null" json:"slug"`
	Subtitulo           string     `gorm:"size:300" json:"subtitulo"`
	DescricaoCompleta   string     `gorm:"type:text" json:"descricao_completa"`
	CategoriaID         uint32     `gorm:"index;not null" json:"categoria_id"`
	Modalidade          string     `gorm:"size:20;default:'fomento'" json:"modalidade"`
	Status              string     `gorm:"size:20;index;default:'rascunho'" json:"status"`
	DataPublicacao      *time.Time `json:"data_publicacao"`
	DataAbertura        *time.Time `json:"data_abertura"`
	DataEncerramento    *time.Time `json:"data_encerramento"`
	NumeroDesafios      *uint32    `json:"numero_desafios"`
	ValorPremio         *float64   `gorm:"type:decimal(12,2)" json:"valor_premio"`
	LinkInscricao       string     `gorm:"size:256" json:"link_inscricao"`
	LinkMaisInformacoes string     `gorm:"size:256" json:"link_mais_informacoes"`
	Destaque            bool       `gorm:"default:false" json:"destaque"`
	CorStatus           string     `gorm:"size:7" json:"cor_status"`
	Visualizacoes       uint64     `gorm:"default:0" json:"visualizacoes"`
	CriadoPor           string     `gorm:"size:64" json:"criado_por"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`

	Categoria    CategoriaEdital     `gorm:"foreignKey:CategoriaID" json:"categoria"`
	Areas        []AreaInteresse     `gorm:"many2many:edital_areas" json:"areas"`
	Notificacoes []NotificacaoEdital `gorm:"foreignKey:EditalID;constraint:OnDelete:CASCADE" json:"-"`
	Anexos       []AnexoEdital       `gorm:"foreignKey:EditalID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Edital) TableName() string { return "editais" }

// NotificacaoEdital: pedido de um cidadão para ser avisado quando o
// edital abrir. O par (edital, cpf) é único; a chave composta no banco
// é a garantia real contra corrida no check-then-insert.
type NotificacaoEdital struct {
	ID               uint64     `gorm:"primaryKey" json:"id"`
	EditalID         uint64     `gorm:"uniqueIndex:uniq_edital_cpf;not null" json:"edital_id"`
	CPF              string     `gorm:"column:cpf;size:14;uniqueIndex:uniq_edital_cpf;not null" json:"cpf"`
	NomeCompleto     string     `gorm:"size:150" json:"nome_completo"`
	Email            string     `gorm:"size:256;not null" json:"email"`
	TelefoneWhatsapp string     `gorm:"size:20" json:"telefone_whatsapp"`
	DataSolicitacao  time.Time  `gorm:"autoCreateTime" json:"data_solicitacao"`
	Notificado       bool       `gorm:"default:false" json:"notificado"`
	DataNotificacao  *time.Time `json:"data_notificacao"`
	IPEndereco       string     `gorm:"column:ip_endereco;size:45" json:"ip_endereco"`
	UserAgent        string     `gorm:"type:text" json:"user_agent"`
	Edital           Edital     `gorm:"foreignKey:EditalID" json:"-"`
}

func (NotificacaoEdital) TableName() string { return "notificacoes_editais" }

// Anexos administrados junto ao edital (links para arquivos publicados)
type AnexoEdital struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	EditalID uint64 `gorm:"index;not null" json:"edital_id"`
	Titulo   string `gorm:"size:200;not null" json:"titulo"`
	Arquivo  string `gorm:"size:512;not null" json:"arquivo"`
	Ativo    bool   `gorm:"default:true" json:"ativo"`
	Ordem    uint16 `gorm:"default:0" json:"ordem"`
	Edital   Edital `gorm:"foreignKey:EditalID" json:"-"`
}

func (AnexoEdital) TableName() string { return "anexos_editais" }

// Operadores do painel administrativo
type AdminUser struct {
	ID        uint32    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;unique;not null" json:"username"`
	SenhaHash string    `gorm:"size:128;not null" json:"-"`
	Nome      string    `gorm:"size:150" json:"nome"`
	Ativo     bool      `gorm:"default:true" json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
}

// Configuração do site: linhas com chaves fixas e conhecidas,
// carregadas em cache na subida (ver data.LoadSettings)
type Setting struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value string `gorm:"size:512"`
}
