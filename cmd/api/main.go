package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/config"
	appHTTP "github.com/fieldtrack/fieldtrack-backend-go/internal/handler/http"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/database"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/email"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/jwt"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/storage"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/repository/postgresql"
	activityService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/activity"
	attendanceService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/attendance"
	authService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/auth"
	employeeService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/employee"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/service/file"
	leaveService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/leave"
	reportService "github.com/fieldtrack/fieldtrack-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	adminRepo := postgresql.NewAdminRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	activityRepo := postgresql.NewActivityRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	resetRepo := postgresql.NewPasswordResetRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage)
	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service: ", err)
	}

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, fileSvc)
	authSvc := authService.NewAuthService(db, adminRepo, employeeRepo, resetRepo, jwtService, emailSvc)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, employeeRepo, employeeSvc, fileSvc)
	activitySvc := activityService.NewActivityService(db, activityRepo, employeeSvc)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, employeeSvc, fileSvc)
	reportSvc := reportService.NewReportService(attendanceRepo, leaveRepo, activityRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc, fileSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Activity:   appHTTP.NewActivityHandler(activitySvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
