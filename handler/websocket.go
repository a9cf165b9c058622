package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"movie_streaming/config"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisOnce   sync.Once
	redisClient *redis.Client
)

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigOrDefault("REDIS_ADDR", "localhost:6379"),
		})
	})
	return redisClient
}

type paymentEvent struct {
	PaymentId uint   `json:"paymentId"`
	Status    string `json:"status"`
	Token     string `json:"token,omitempty"`
}

// PublishPaymentStatus báo kết quả giao dịch cho các client đang chờ qua WS.
// Redis chết thì chỉ mất thông báo realtime, giao dịch không bị ảnh hưởng.
func PublishPaymentStatus(paymentId uint, status string, token string) {
	payload, err := json.Marshal(paymentEvent{
		PaymentId: paymentId,
		Status:    status,
		Token:     token,
	})
	if err != nil {
		return
	}

	channel := fmt.Sprintf("payment:%d", paymentId)
	if err := getRedisClient().Publish(context.Background(), channel, payload).Err(); err != nil {
		log.Printf("Lỗi publish trạng thái giao dịch %d: %v", paymentId, err)
	}
}

// PaymentSocket giữ kết nối WS trong lúc khách thanh toán bên gateway và đẩy
// trạng thái cuối cùng về client ngay khi callback được đối soát
func PaymentSocket(c *websocket.Conn) {
	paymentIdStr := c.Params("id")
	id64, err := strconv.ParseUint(paymentIdStr, 10, 64)
	if err != nil || id64 == 0 {
		c.Close()
		return
	}
	paymentId := uint(id64)

	defer c.Close()

	pubsub := getRedisClient().Subscribe(
		context.Background(),
		fmt.Sprintf("payment:%d", paymentId),
	)
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		var event paymentEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			continue
		}
		if err := c.WriteJSON(event); err != nil {
			return
		}
		// Trạng thái terminal → đóng kết nối
		if event.Status != "pending" {
			return
		}
	}
}
