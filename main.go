package main

import (
	"log"
	"movie_streaming/config"
	"movie_streaming/database"
	"movie_streaming/helper"
	"movie_streaming/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // ✅ đủ cho upload poster
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOrDefault("CLIENT_URL", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartPaymentSweeper()
	defer helper.StopPaymentSweeper()
	helper.StartSubscriptionScheduler()
	defer helper.StopSubscriptionScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":" + config.ConfigOrDefault("PORT", "8002")))
}
