package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"

	"github.com/campuscare/clinic-backend/internal/adapters/database"
	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/postgres"
	"github.com/campuscare/clinic-backend/pkg/config"
)

var dialect = goqu.Dialect("postgres")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := pgClient.DB()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := db.ExecContext(ctx, `
			TRUNCATE TABLE
				prescriptions,
				patient_visits,
				symptom_checks,
				sick_leave_requests,
				medicine_requests,
				medicine_inventory,
				notifications,
				broadcasts,
				appointments,
				availability_windows,
				staff_schedules,
				beds,
				staff,
				students
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	// 1. Seed students
	students := []entities.Student{
		{ID: uuid.New().String(), Name: "Asha Verma", RollNumber: "CS21B014", Department: "Computer Science", Phone: "9800000001", Email: "asha.verma@campus.edu", Allergies: "Penicillin", VaccinationRecords: "Tetanus 2023"},
		{ID: uuid.New().String(), Name: "Rohit Menon", RollNumber: "ME20B102", Department: "Mechanical Engineering", Phone: "9800000002", Email: "rohit.menon@campus.edu", ChronicConditions: "Asthma"},
		{ID: uuid.New().String(), Name: "Lena Thomas", RollNumber: "EE22B057", Department: "Electrical Engineering", Phone: "9800000003", Email: "lena.thomas@campus.edu"},
	}
	for _, s := range students {
		insert(ctx, db, "students", goqu.Record{
			"id": s.ID, "name": s.Name, "roll_number": s.RollNumber, "department": s.Department,
			"phone": s.Phone, "email": s.Email, "allergies": s.Allergies,
			"chronic_conditions": s.ChronicConditions, "vaccination_records": s.VaccinationRecords,
		})
	}
	log.Printf("Seeded %d students", len(students))

	// 2. Seed staff
	staff := []entities.Staff{
		{ID: uuid.New().String(), Name: "Meera Iyer", Role: entities.RoleDoctor, Phone: "9810000001", Email: "dr.iyer@campus.edu", ShiftTimings: "09:00-17:00"},
		{ID: uuid.New().String(), Name: "Vikram Rao", Role: entities.RoleDoctor, Phone: "9810000002", Email: "dr.rao@campus.edu", ShiftTimings: "13:00-21:00"},
		{ID: uuid.New().String(), Name: "Priya Nair", Role: entities.RoleNurse, Phone: "9810000003", Email: "p.nair@campus.edu", ShiftTimings: "08:00-16:00"},
		{ID: uuid.New().String(), Name: "Clinic Admin", Role: entities.RoleAdmin, Phone: "9810000004", Email: "admin@campus.edu"},
	}
	for _, m := range staff {
		insert(ctx, db, "staff", goqu.Record{
			"id": m.ID, "name": m.Name, "role": m.Role, "phone": m.Phone,
			"email": m.Email, "shift_timings": m.ShiftTimings,
		})
	}
	log.Printf("Seeded %d staff members", len(staff))

	// 3. Seed beds
	for i := 1; i <= 6; i++ {
		insert(ctx, db, "beds", goqu.Record{
			"id": uuid.New().String(), "bed_number": i, "status": entities.BedStatusAvailable,
		})
	}
	log.Println("Seeded 6 beds")

	// 4. Seed medicine inventory through the adapter so validation applies
	medicineRepo := database.NewMedicineInventoryAdapter(pgClient)
	medicines := []*entities.MedicineItem{
		{ID: uuid.New().String(), Name: "Paracetamol 500mg", Quantity: 200, ExpiryDate: "2027-06-30", Category: entities.MedicineCategoryTablet, Threshold: 40},
		{ID: uuid.New().String(), Name: "Cetirizine 10mg", Quantity: 120, ExpiryDate: "2027-01-31", Category: entities.MedicineCategoryTablet, Threshold: 25},
		{ID: uuid.New().String(), Name: "Cough Syrup 100ml", Quantity: 35, ExpiryDate: "2026-12-31", Category: entities.MedicineCategorySyrup, Threshold: 10},
		{ID: uuid.New().String(), Name: "Tetanus Toxoid", Quantity: 18, ExpiryDate: "2026-11-30", Category: entities.MedicineCategoryInjection, Threshold: 5},
		{ID: uuid.New().String(), Name: "ORS Sachet", Quantity: 80, ExpiryDate: "2028-03-31", Category: entities.MedicineCategoryOther, Threshold: 20},
	}
	for _, m := range medicines {
		m.UpdatedAt = time.Now().UTC()
		if err := medicineRepo.Create(ctx, m); err != nil {
			log.Printf("Failed to create medicine %s: %v", m.Name, err)
		}
	}
	log.Printf("Seeded %d medicines", len(medicines))

	// 5. Seed availability windows for the next three days
	availabilityRepo := database.NewAvailabilityAdapter(pgClient)
	now := time.Now().UTC()
	for day := 1; day <= 3; day++ {
		date := now.AddDate(0, 0, day).Format("2006-01-02")
		for _, doctor := range staff[:2] {
			window := &entities.AvailabilityWindow{
				ID:        uuid.New().String(),
				DoctorID:  doctor.ID,
				Date:      date,
				StartTime: "10:00",
				EndTime:   "13:00",
				Status:    entities.AvailabilityStatusAvailable,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := availabilityRepo.Create(ctx, window); err != nil {
				log.Printf("Failed to create availability window for %s on %s: %v", doctor.Name, date, err)
			}
		}
	}
	log.Println("Seeded availability windows for the next 3 days")

	log.Println("Seeding complete")
}

func insert(ctx context.Context, db *sql.DB, table string, record goqu.Record) {
	query, args, err := dialect.Insert(table).Rows(record).ToSQL()
	if err != nil {
		log.Fatalf("Failed to build insert for %s: %v", table, err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		log.Printf("Failed to insert into %s: %v", table, err)
	}
}
