// Package seed holds the shipped default catalog data and the app version
// watermark that drives reconciliation on upgrade.
package seed

import "github.com/basetic/osint-terminal/internal/domain"

// Version is the build's data version. Bumping it triggers the additive
// reconciliation merge of the default lists into persisted collections.
const Version = "1.1.0"

// DefaultCategories is the shipped category list. IDs are stable across
// releases; reconciliation merges by id, never by name.
var DefaultCategories = []domain.Category{
	{ID: "cat-governo", Name: "Governo"},
	{ID: "cat-registros", Name: "Registros & CNPJ"},
	{ID: "cat-social", Name: "Redes Sociais"},
	{ID: "cat-dominios", Name: "Domínios & IP"},
	{ID: "cat-geo", Name: "Geolocalização"},
	{ID: "cat-email", Name: "E-mail & Vazamentos"},
	{ID: "cat-imagens", Name: "Imagens & Metadados"},
}

// DefaultTools is the shipped tool list.
var DefaultTools = []domain.Tool{
	{
		ID:          "tool-transparencia",
		Name:        "Portal da Transparência",
		Description: "Consulta de gastos públicos, servidores e convênios do governo federal.",
		URL:         "https://portaldatransparencia.gov.br",
		CategoryID:  "cat-governo",
	},
	{
		ID:          "tool-dou",
		Name:        "Diário Oficial da União",
		Description: "Publicações oficiais do governo federal, pesquisável por termo e data.",
		URL:         "https://www.in.gov.br",
		CategoryID:  "cat-governo",
	},
	{
		ID:          "tool-receita-cnpj",
		Name:        "Receita Federal - CNPJ",
		Description: "Emissão de comprovante de inscrição e situação cadastral de CNPJ.",
		URL:         "https://solucoes.receita.fazenda.gov.br/servicos/cnpjreva",
		CategoryID:  "cat-registros",
	},
	{
		ID:          "tool-jucesp",
		Name:        "Juntas Comerciais",
		Description: "Consulta de registros empresariais nas juntas comerciais estaduais.",
		URL:         "https://www.gov.br/empresas-e-negocios",
		CategoryID:  "cat-registros",
	},
	{
		ID:          "tool-social-searcher",
		Name:        "Social Searcher",
		Description: "Busca de menções e perfis em redes sociais em tempo real.",
		URL:         "https://www.social-searcher.com",
		CategoryID:  "cat-social",
	},
	{
		ID:          "tool-namechk",
		Name:        "Namechk",
		Description: "Verificação de disponibilidade de um username em dezenas de plataformas.",
		URL:         "https://namechk.com",
		CategoryID:  "cat-social",
	},
	{
		ID:          "tool-registro-br",
		Name:        "Registro.br Whois",
		Description: "Titularidade e dados de registro de domínios .br.",
		URL:         "https://registro.br/tecnologia/ferramentas/whois",
		CategoryID:  "cat-dominios",
	},
	{
		ID:          "tool-shodan",
		Name:        "Shodan",
		Description: "Motor de busca de dispositivos e serviços expostos na internet.",
		URL:         "https://www.shodan.io",
		CategoryID:  "cat-dominios",
	},
	{
		ID:          "tool-virustotal",
		Name:        "VirusTotal",
		Description: "Análise de URLs, domínios e arquivos contra dezenas de antivírus.",
		URL:         "https://www.virustotal.com",
		CategoryID:  "cat-dominios",
	},
	{
		ID:          "tool-maps",
		Name:        "Google Maps",
		Description: "Mapas, imagens de satélite e Street View para verificação de locais.",
		URL:         "https://maps.google.com",
		CategoryID:  "cat-geo",
	},
	{
		ID:          "tool-wikimapia",
		Name:        "Wikimapia",
		Description: "Mapa colaborativo com anotações de pontos de interesse.",
		URL:         "https://wikimapia.org",
		CategoryID:  "cat-geo",
	},
	{
		ID:          "tool-hibp",
		Name:        "Have I Been Pwned",
		Description: "Verificação de e-mails expostos em vazamentos de dados conhecidos.",
		URL:         "https://haveibeenpwned.com",
		CategoryID:  "cat-email",
	},
	{
		ID:          "tool-hunter",
		Name:        "Hunter.io",
		Description: "Descoberta e verificação de endereços de e-mail corporativos.",
		URL:         "https://hunter.io",
		CategoryID:  "cat-email",
	},
	{
		ID:          "tool-tineye",
		Name:        "TinEye",
		Description: "Busca reversa de imagens para rastrear origem e reutilização.",
		URL:         "https://tineye.com",
		CategoryID:  "cat-imagens",
	},
	{
		ID:          "tool-wayback",
		Name:        "Wayback Machine",
		Description: "Versões arquivadas de páginas web ao longo do tempo.",
		URL:         "https://web.archive.org",
		CategoryID:  "cat-imagens",
	},
}

// DefaultAccount returns the seed operator account used when no account
// collection has ever been persisted. The account collection must never be
// empty; this is the guaranteed first element.
func DefaultAccount() domain.Account {
	return domain.Account{
		ID:       "1",
		Username: "Admin",
		Password: "baseti123456",
		Role:     domain.RoleAdmin,
	}
}

// DefaultTheme is the theme applied when none has been persisted.
const DefaultTheme = domain.ThemeDark
