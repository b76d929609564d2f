package controller

import (
	"strings"

	"sekolah_backend/internals/features/finance/payments/model"
	"sekolah_backend/internals/features/finance/payments/service"
	helper "sekolah_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PaymentController struct {
	Payments *service.PaymentService
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{Payments: svc}
}

var eventSortColumns = map[string]string{
	"id":         "event_id",
	"created_at": "created_at",
}

// POST /api/tagihan/:tagihan_id/pembayaran-online
func (ctl *PaymentController) CreateOnline(c *fiber.Ctx) error {
	id, err := helper.ParamID(c, "tagihan_id")
	if err != nil {
		return err
	}
	res, err := ctl.Payments.CreateOnline(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Transaksi pembayaran online dibuat", res)
}

// POST /api/payments/midtrans/notification (publik, diverifikasi lewat signature)
func (ctl *PaymentController) MidtransNotification(c *fiber.Ctx) error {
	var n service.Notification
	if err := c.BodyParser(&n); err != nil {
		return helper.BodyError(err)
	}

	headers := map[string]string{}
	c.Request().Header.VisitAll(func(k, v []byte) {
		key := string(k)
		if strings.EqualFold(key, fiber.HeaderAuthorization) {
			return
		}
		headers[key] = string(v)
	})

	status, err := ctl.Payments.HandleNotification(c.UserContext(), n, headers)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "status": status})
}

// GET /api/payments/events?order_id=&tagihan_id=
func (ctl *PaymentController) ListEvents(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "id", "desc", helper.DefaultOpts)
	q := ctl.Payments.DB.WithContext(c.Context()).Model(&model.PaymentGatewayEventModel{})
	if orderID := strings.TrimSpace(c.Query("order_id")); orderID != "" {
		q = q.Where("order_id = ?", orderID)
	}
	tagihanID, err := helper.QueryID(c, "tagihan_id")
	if err != nil {
		return err
	}
	if tagihanID > 0 {
		q = q.Where("tagihan_id = ?", tagihanID)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Unexpected(err)
	}
	var rows []model.PaymentGatewayEventModel
	if err := p.Apply(q, eventSortColumns, "id").Find(&rows).Error; err != nil {
		return helper.Unexpected(err)
	}
	return helper.JsonList(c, "Daftar event payment gateway", rows, total, helper.BuildMeta(total, p))
}
