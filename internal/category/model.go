package category

type Category struct {
	Name          string         `json:"name"`
	ProductCount  int            `json:"productCount"`
	Subcategories []*Subcategory `json:"subcategories"`
}

type Subcategory struct {
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}
