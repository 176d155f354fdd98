// @title         win API
// @version       1.0
// @description   Бэкенд приложения знакомств WIN: совместимость, подбор анкет, лента и генерация изображений.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Токен авторизации. Поддерживаются форматы: "Bearer <JWT>" или "<JWT>".
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
