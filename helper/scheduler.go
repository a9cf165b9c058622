package helper

import (
	"log"
	"movie_streaming/database"
	"movie_streaming/model"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var paymentSweeper *cron.Cron

// StartPaymentSweeper quét giao dịch pending quá 24h và chuyển thành failed.
// Cùng guard status = 'pending' như callback nên không đè lên giao dịch
// vừa được gateway xác nhận.
func StartPaymentSweeper() {
	paymentSweeper = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 10 phút
	_, err := paymentSweeper.AddFunc("*/10 * * * *", expireStalePayments)
	if err != nil {
		log.Printf("Lỗi khởi tạo payment sweeper: %v", err)
		return
	}

	paymentSweeper.Start()
	log.Println("Payment sweeper đã khởi động (mỗi 10 phút)")
}

func expireStalePayments() {
	cutoff := time.Now().Add(-24 * time.Hour)
	result := database.DB.Model(&model.Payment{}).
		Where("status = ? AND payment_date < ?", model.PaymentPending, cutoff).
		Update("status", model.PaymentFailed)

	if result.Error != nil {
		log.Printf("Lỗi quét giao dịch pending: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d giao dịch pending quá hạn thành 'failed'", result.RowsAffected)
	}
}

// Dừng sweeper khi tắt server
func StopPaymentSweeper() {
	if paymentSweeper != nil {
		paymentSweeper.Stop()
	}
}

var subscriptionScheduler gocron.Scheduler

// DowngradeExpiredSubscriptions đưa PriceId về 0 cho khách hàng đã hết hạn gói
func DowngradeExpiredSubscriptions() {
	log.Println("[CRON] DowngradeExpiredSubscriptions triggered")

	result := database.DB.Model(&model.Customer{}).
		Where("expiry_date IS NOT NULL AND expiry_date < ? AND price_id <> 0", time.Now()).
		Update("price_id", 0)

	if result.Error != nil {
		log.Printf("Lỗi quét gói cước hết hạn: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã hạ gói %d khách hàng hết hạn", result.RowsAffected)
	}
}

func StartSubscriptionScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Fatal(err)
	}

	subscriptionScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(DowngradeExpiredSubscriptions),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("✅ Subscription scheduler started (00:05 ICT)")
}

func StopSubscriptionScheduler() {
	if subscriptionScheduler != nil {
		_ = subscriptionScheduler.Shutdown()
	}
}
