package main

import (
	"github.com/SundayYogurt/learning_service/config"
	"github.com/SundayYogurt/learning_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
