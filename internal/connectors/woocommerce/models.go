package woocommerce

// Product represents a WooCommerce product as returned by the REST API.
type Product struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Slug       string      `json:"slug"`
	Type       string      `json:"type"` // "simple" or "variable"
	Status     string      `json:"status"`
	SKU        string      `json:"sku"`
	Price      string      `json:"price"`
	Attributes []Attribute `json:"attributes"`
	Variations []int64     `json:"variations"`
	MetaData   []MetaData  `json:"meta_data"`
}

// Attribute is a WooCommerce product attribute. Variation marks attributes
// that drive variant structure (they become product options); the rest are
// descriptive only.
type Attribute struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Slug      string   `json:"slug"`
	Variation bool     `json:"variation"`
	Options   []string `json:"options"`
}

// Variation is one purchasable configuration of a variable product.
type Variation struct {
	ID         int64                `json:"id"`
	SKU        string               `json:"sku"`
	Price      string               `json:"price"`
	Attributes []VariationAttribute `json:"attributes"`
}

// VariationAttribute pins one attribute to a concrete value on a variation.
type VariationAttribute struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Option string `json:"option"`
}

// MetaData is a free-form key/value pair attached by plugins.
type MetaData struct {
	ID    int64       `json:"id"`
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}
