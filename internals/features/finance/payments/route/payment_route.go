package route

import (
	"sekolah_backend/internals/features/finance/payments/controller"
	"sekolah_backend/internals/features/finance/payments/service"

	"github.com/gofiber/fiber/v2"
)

// PaymentRoutes: endpoint yang butuh login (dipasang di grup terproteksi).
func PaymentRoutes(api fiber.Router, svc *service.PaymentService, adminOnly fiber.Handler) {
	ctl := controller.NewPaymentController(svc)

	api.Post("/tagihan/:tagihan_id/pembayaran-online", ctl.CreateOnline)
	api.Get("/payments/events", adminOnly, ctl.ListEvents)
}

// PaymentWebhookRoutes: dipanggil server Midtrans, tanpa JWT.
func PaymentWebhookRoutes(api fiber.Router, svc *service.PaymentService) {
	ctl := controller.NewPaymentController(svc)

	api.Post("/payments/midtrans/notification", ctl.MidtransNotification)
}
