package router

import (
	"movie_streaming/handler"
	"movie_streaming/middleware"
	"movie_streaming/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	customer := v1.Group("/customer", logger.New())
	customer.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	customer.Post("/login", handler.CustomerLogin)
	customer.Get("/me", middleware.Protected(), handler.GetCurrentCustomer)
	customer.Post("/reset-password-simple", validate.ResetPasswordSimple(), handler.ResetPasswordSimple)
	customer.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	customer.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	movie := v1.Group("/movie", logger.New())
	movie.Get("/", middleware.OptionalJWT(), handler.GetMovies)
	movie.Get("/slug/:slug", middleware.OptionalJWT(), handler.GetMovieBySlug)
	movie.Get("/:movieId", middleware.OptionalJWT(), validate.GetById("movieId"), handler.GetMovieById)
	movie.Get("/:movieId/video", middleware.Protected(), validate.GetById("movieId"), handler.GetMovieVideo)
	movie.Post("/", middleware.Protected(), validate.CreateMovie(), handler.CreateMovie)
	movie.Put("/:movieId", middleware.Protected(), validate.EditMovie("movieId"), handler.EditMovie)
	movie.Delete("/:movieId", middleware.Protected(), validate.GetById("movieId"), handler.DeleteMovie)
	movie.Post("/:movieId/poster", middleware.Protected(), validate.GetById("movieId"), handler.UploadMoviePoster)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)

	watchlist := v1.Group("/watchlist", logger.New())
	watchlist.Post("/", middleware.Protected(), validate.WatchInput(), handler.ToggleWatchlist)
	watchlist.Get("/:customerId", middleware.Protected(), validate.GetById("customerId"), handler.GetWatchlist)
	watchlist.Delete("/", middleware.Protected(), validate.WatchInput(), handler.RemoveFromWatchlist)

	watchhistory := v1.Group("/watchhistory", logger.New())
	watchhistory.Post("/", middleware.Protected(), validate.WatchInput(), handler.AddWatchHistory)
	watchhistory.Get("/:customerId", middleware.Protected(), validate.GetById("customerId"), handler.GetWatchHistory)
	watchhistory.Delete("/clear/:customerId", middleware.Protected(), validate.GetById("customerId"), handler.ClearWatchHistory)
	watchhistory.Delete("/", middleware.Protected(), validate.WatchInput(), handler.RemoveFromWatchHistory)

	price := v1.Group("/price", logger.New())
	price.Get("/", handler.GetPrices)
	price.Get("/:priceId", validate.GetById("priceId"), handler.GetPriceById)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/", middleware.Protected(), validate.CreatePayment(), handler.CreatePayment)
	payment.Put("/update_status", middleware.Protected(), validate.UpdatePaymentStatus(), handler.UpdatePaymentStatus)
	payment.Get("/revenue", middleware.Protected(), handler.GetRevenue)

	// Callback từ gateway không có JWT, xác thực bằng chữ ký HMAC
	vnpay := v1.Group("/vnpay", logger.New())
	vnpay.Post("/create_payment_url", middleware.Protected(), handler.CreateVNPayUrl)
	vnpay.Get("/vnpay_return", handler.VNPayReturn)

	momo := v1.Group("/momo", logger.New())
	momo.Post("/create_payment", middleware.Protected(), handler.CreateMoMoPayment)
	momo.Post("/momo_return", handler.MoMoReturn)

	ws := v1.Group("/ws")
	ws.Get("/payment/:id", websocket.New(handler.PaymentSocket))
}
