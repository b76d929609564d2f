package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"sekolah_backend/internals/constants"
	"sekolah_backend/internals/features/finance/payments/model"
	tagihan "sekolah_backend/internals/features/finance/tagihan/model"
	tagihanService "sekolah_backend/internals/features/finance/tagihan/service"
	helper "sekolah_backend/internals/helpers"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const orderPrefix = "TGH-"

var errGrossMismatch = errors.New("gross_amount kurang dari jumlah tagihan")

type PaymentService struct {
	DB        *gorm.DB
	Snap      SnapCreator
	ServerKey string
	Lifecycle *tagihanService.Lifecycle
	Now       func() time.Time
}

func NewPaymentService(db *gorm.DB, snapClient SnapCreator, serverKey string, lc *tagihanService.Lifecycle) *PaymentService {
	if lc == nil {
		lc = tagihanService.NewLifecycle()
	}
	return &PaymentService{DB: db, Snap: snapClient, ServerKey: serverKey, Lifecycle: lc, Now: time.Now}
}

func (s *PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

/* =========================================================
   Snap: buat transaksi untuk tagihan belum lunas
========================================================= */

type OnlinePayment struct {
	TagihanID   uint   `json:"tagihan_id"`
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// OrderID: TGH-<tagihan_id>-<8 hex acak>
func OrderID(tagihanID uint) string {
	return fmt.Sprintf("%s%d-%s", orderPrefix, tagihanID, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// TagihanIDFromOrder: kebalikan OrderID.
func TagihanIDFromOrder(orderID string) (uint, bool) {
	rest, ok := strings.CutPrefix(orderID, orderPrefix)
	if !ok {
		return 0, false
	}
	idPart, _, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(idPart, 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// grossIDR: Midtrans hanya menerima rupiah bulat, pecahan dibulatkan ke atas.
func grossIDR(d decimal.Decimal) int64 {
	return d.Ceil().IntPart()
}

func (s *PaymentService) CreateOnline(ctx context.Context, tagihanID uint) (*OnlinePayment, error) {
	if s.Snap == nil {
		return nil, helper.Unexpected(errors.New("midtrans belum dikonfigurasi (MIDTRANS_SERVER_KEY kosong)"))
	}

	var t tagihan.TagihanModel
	if err := s.DB.WithContext(ctx).Preload("Siswa.Ortu").Preload("Biaya").First(&t, tagihanID).Error; err != nil {
		return nil, helper.NotFoundOr(err, "Tagihan tidak ditemukan")
	}
	if t.Status == constants.StatusLunas {
		return nil, helper.Conflict("Tagihan sudah lunas")
	}

	orderID := OrderID(t.TagihanID)
	gross := grossIDR(t.Jumlah)
	itemName := "Tagihan sekolah"
	if t.Biaya != nil {
		itemName = t.Biaya.NamaBiaya
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{OrderID: orderID, GrossAmt: gross},
		Items: &[]midtrans.ItemDetails{{
			ID:       strconv.FormatUint(uint64(t.BiayaID), 10),
			Name:     truncate(itemName, 50),
			Price:    gross,
			Qty:      1,
			Category: "Tagihan",
		}},
	}
	if t.Siswa != nil {
		cust := &midtrans.CustomerDetails{FName: truncate(t.Siswa.Nama, 50)}
		if t.Siswa.Ortu != nil {
			cust.LName = truncate(defaultString(t.Siswa.Ortu.DisplayName(), "-"), 50)
			cust.Phone = t.Siswa.Ortu.NoHP
		}
		req.CustomerDetail = cust
	}

	resp, merr := s.Snap.CreateTransaction(req)
	if merr != nil {
		return nil, helper.Unexpected(merr)
	}
	return &OnlinePayment{
		TagihanID:   t.TagihanID,
		OrderID:     orderID,
		GrossAmount: gross,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

/* =========================================================
   Webhook notifikasi Midtrans
========================================================= */

type Notification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"` // capture, settlement, pending, deny, cancel, expire, refund
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"` // accept / challenge / deny
	TransactionID     string `json:"transaction_id"`
	SettlementTime    string `json:"settlement_time"`
}

// Signature: SHA512(order_id + status_code + gross_amount + ServerKey)
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	h := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(h[:])
}

func (n Notification) validSignature(serverKey string) bool {
	if serverKey == "" || n.SignatureKey == "" {
		return false
	}
	want := Signature(n.OrderID, n.StatusCode, n.GrossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(n.SignatureKey))) == 1
}

// Paid: settlement, atau capture dengan fraud accept.
func (n Notification) Paid() bool {
	switch strings.ToLower(n.TransactionStatus) {
	case "settlement":
		return true
	case "capture":
		return strings.EqualFold(n.FraudStatus, "accept")
	}
	return false
}

// MetodePembayaran yang dicatat di pemasukan.
func (n Notification) MetodePembayaran() string {
	return fmt.Sprintf("Midtrans (%s)", defaultString(n.PaymentType, "unknown"))
}

// HandleNotification mengembalikan status event akhir. Signature salah → error 401.
func (s *PaymentService) HandleNotification(ctx context.Context, n Notification, headers map[string]string) (string, error) {
	ev := s.newEvent(n, headers)
	if !n.validSignature(s.ServerKey) {
		ev.Status = model.EventInvalidSignature
		s.saveEvent(ctx, ev)
		return ev.Status, helper.NewAppError(helper.KindTokenInvalid, "Signature tidak valid")
	}

	tagihanID, ok := TagihanIDFromOrder(n.OrderID)
	if !ok {
		s.finishEvent(ctx, ev, model.EventIgnored, "order_id bukan milik tagihan")
		return model.EventIgnored, nil
	}
	ev.TagihanID = &tagihanID
	s.saveEvent(ctx, ev)

	if !n.Paid() {
		s.finishEvent(ctx, ev, model.EventIgnored, "")
		return model.EventIgnored, nil
	}

	status := model.EventProcessed
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t tagihan.TagihanModel
		if err := helper.ForUpdate(tx).First(&t, tagihanID).Error; err != nil {
			return helper.NotFoundOr(err, "Tagihan tidak ditemukan")
		}
		if t.Status == constants.StatusLunas {
			status = model.EventDuplicate
			return nil
		}
		if gross, err := decimal.NewFromString(n.GrossAmount); err != nil || gross.LessThan(t.Jumlah) {
			return fmt.Errorf("%w: gross_amount=%q jumlah=%s", errGrossMismatch, n.GrossAmount, t.Jumlah)
		}

		prev := t.Status
		t.Status = constants.StatusLunas
		if err := tx.Omit("Siswa", "Biaya").Save(&t).Error; err != nil {
			return helper.MapWriteError(err)
		}
		return s.Lifecycle.Transition(tx, prev, &t, tagihanService.Settlement{
			Metode: n.MetodePembayaran(),
			Sumber: constants.SumberMidtrans,
		})
	})
	if err != nil {
		s.finishEvent(ctx, ev, model.EventFailed, err.Error())
		// data notifikasi tidak cocok cukup dicatat; error DB dikembalikan supaya Midtrans mengirim ulang
		if errors.Is(err, errGrossMismatch) || helper.KindOf(err) == helper.KindNotFound {
			return model.EventFailed, nil
		}
		return model.EventFailed, err
	}
	s.finishEvent(ctx, ev, status, "")
	return status, nil
}

func (s *PaymentService) newEvent(n Notification, headers map[string]string) *model.PaymentGatewayEventModel {
	headersJSON, _ := json.Marshal(headers)
	payloadJSON, _ := json.Marshal(n)
	ev := &model.PaymentGatewayEventModel{
		Provider:          model.ProviderMidtrans,
		OrderID:           n.OrderID,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		PaymentType:       n.PaymentType,
		Headers:           datatypes.JSON(headersJSON),
		Payload:           datatypes.JSON(payloadJSON),
		Status:            model.EventReceived,
	}
	if n.TransactionID != "" {
		ev.TransactionID = &n.TransactionID
	}
	if n.SignatureKey != "" {
		ev.Signature = &n.SignatureKey
	}
	return ev
}

// saveEvent: log event tidak boleh menggagalkan webhook.
func (s *PaymentService) saveEvent(ctx context.Context, ev *model.PaymentGatewayEventModel) {
	if err := s.DB.WithContext(ctx).Save(ev).Error; err != nil {
		log.Printf("[MIDTRANS] simpan event order_id=%s gagal: %v", ev.OrderID, err)
	}
}

func (s *PaymentService) finishEvent(ctx context.Context, ev *model.PaymentGatewayEventModel, status, errMsg string) {
	now := s.now()
	ev.Status = status
	ev.ProcessedAt = &now
	if errMsg != "" {
		ev.Error = &errMsg
	}
	s.saveEvent(ctx, ev)
}
