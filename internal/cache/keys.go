package cache

import "fmt"

func ShopKey(id uint) string {
	return fmt.Sprintf("catalog:shop:%d", id)
}

func ShopListKey() string {
	return "catalog:shops"
}

func ShopServicesKey(shopID uint) string {
	return fmt.Sprintf("catalog:shop:%d:services", shopID)
}

func ShopBarbersKey(shopID uint) string {
	return fmt.Sprintf("catalog:shop:%d:barbers", shopID)
}
