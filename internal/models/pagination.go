package models

// CatalogPagination is the page block the exercise catalog has always returned.
type CatalogPagination struct {
	Total   int `json:"total"`
	Pages   int `json:"pages"`
	Current int `json:"current"`
	Limit   int `json:"limit"`
}
