package domain

// Teams статический список команд, которые ведут работу со спонсорами.
// Используется только для заполнения выпадающего списка на дашборде.
var Teams = []string{
	"Team A",
	"Team B",
	"Team C",
	"Team D",
	"Team E",
}

// Packages список доступных спонсорских пакетов
var Packages = []string{
	"Title Sponsor",
	"Gold Sponsor",
	"Silver Sponsor",
	"Support Sponsor",
}

