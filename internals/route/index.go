package routes

import (
	"log"
	"time"

	"sekolah_backend/internals/configs"
	masterBiayaRoute "sekolah_backend/internals/features/finance/master_biaya/route"
	paymentRoute "sekolah_backend/internals/features/finance/payments/route"
	paymentService "sekolah_backend/internals/features/finance/payments/service"
	pemasukanRoute "sekolah_backend/internals/features/finance/pemasukan/route"
	pengeluaranRoute "sekolah_backend/internals/features/finance/pengeluaran/route"
	tagihanRoute "sekolah_backend/internals/features/finance/tagihan/route"
	tagihanService "sekolah_backend/internals/features/finance/tagihan/service"
	karyawanRoute "sekolah_backend/internals/features/school/karyawan/route"
	kelasRoute "sekolah_backend/internals/features/school/kelas/route"
	orangTuaRoute "sekolah_backend/internals/features/school/orang_tua/route"
	siswaRoute "sekolah_backend/internals/features/school/siswa/route"
	authRoute "sekolah_backend/internals/features/users/auth/route"
	authService "sekolah_backend/internals/features/users/auth/service"
	userRoute "sekolah_backend/internals/features/users/user/route"
	helperStorage "sekolah_backend/internals/helpers/storage"
	middlewares "sekolah_backend/internals/middlewares"
	authMiddleware "sekolah_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps: service yang dibuat di main dan dibagikan ke route.
type Deps struct {
	Tokens    *authService.TokenService
	Lifecycle *tagihanService.Lifecycle
	Payments  *paymentService.PaymentService
	Blob      helperStorage.BlobService
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, deps Deps) {
	BaseRoutes(app, db, cfg, time.Now())

	api := app.Group("/api")
	authMw := authMiddleware.AuthMiddleware(deps.Tokens)
	adminOnly := authMiddleware.AdminOnly()

	// ===================== PUBLIC =====================
	// didaftarkan sebelum grup terproteksi supaya tidak melewati AuthMiddleware
	log.Println("[INFO] Mounting Auth routes...")
	authRoute.AuthRoutes(api, deps.Tokens, authMw, middlewares.LoginRateLimiter())

	log.Println("[INFO] Mounting Payment webhook...")
	paymentRoute.PaymentWebhookRoutes(api, deps.Payments)

	// ===================== PRIVATE (JWT) =====================
	private := api.Group("", authMw)

	log.Println("[INFO] Mounting User routes...")
	userRoute.UserRoutes(private, db, adminOnly)

	log.Println("[INFO] Mounting School routes...")
	siswaRoute.SiswaRoutes(private, db, adminOnly)
	orangTuaRoute.OrangTuaRoutes(private, db, adminOnly)
	karyawanRoute.KaryawanRoutes(private, db, adminOnly)
	kelasRoute.KelasRoutes(private, db, adminOnly)

	log.Println("[INFO] Mounting Finance routes...")
	masterBiayaRoute.MasterBiayaRoutes(private, db, adminOnly)
	tagihanRoute.TagihanRoutes(private, db, deps.Lifecycle, adminOnly)
	pemasukanRoute.PemasukanRoutes(private, db, adminOnly)
	pengeluaranRoute.PengeluaranRoutes(private, db, deps.Blob, cfg.Storage.MaxUploadBytes)
	paymentRoute.PaymentRoutes(private, deps.Payments, adminOnly)
}
