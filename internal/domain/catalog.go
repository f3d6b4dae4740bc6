package domain

// CatalogQuery asks the catalog for one page of search results.
type CatalogQuery struct {
	Text  string
	Skip  int
	Limit int
}

// CatalogPage is one page of results plus the total match count.
type CatalogPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}
