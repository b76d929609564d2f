package service

import (
	"sekolah_backend/internals/configs"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

/* =========================================================
   Midtrans Client
========================================================= */

// SnapCreator: bagian snap.Client yang dipakai (bisa di-fake di test).
type SnapCreator interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// NewSnapClient: nil kalau server key belum diset (pembayaran online nonaktif).
func NewSnapClient(cfg configs.MidtransConfig) SnapCreator {
	if cfg.ServerKey == "" {
		return nil
	}
	var c snap.Client
	if cfg.Production {
		c.New(cfg.ServerKey, midtrans.Production)
	} else {
		c.New(cfg.ServerKey, midtrans.Sandbox)
	}
	return &c
}

/* =========================================================
   Utils
========================================================= */

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
