package catalogservice

// BookableObject модель бронируемого объекта из каталога (стол, парковочное место и т.п.)
type BookableObject struct {
	ID       int64  `json:"id"`
	AreaID   int64  `json:"area_id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// Area модель зоны каталога
type Area struct {
	ID         int64  `json:"id"`
	LocationID int64  `json:"location_id"`
	Name       string `json:"name"`
}

// ErrorResponse модель ошибки от CatalogService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
