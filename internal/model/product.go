package model

// Product is one record in the products data file. The camelCase field names
// are part of the persisted layout consumed by the frontend.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CatTitle    string `json:"catTitle"`
	SubTitle    string `json:"subTitle"`
	Desc        string `json:"desc"`
	Contact     string `json:"contact"`
	PriceLabel  string `json:"priceLabel"`
	Image       string `json:"image"`
	SellerName  string `json:"sellerName"`
	SellerCode  string `json:"sellerCode"`
	SellerEmail string `json:"sellerEmail"`
	CreatedAt   int64  `json:"created_at"`
}
