package dao

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=exposuite_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%s user=postgres password=postgres dbname=exposuite_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	if err = pool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func requireDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() || testDB == nil {
		t.Skip("skipping integration test")
	}
	return testDB
}

func seedEvent(t *testing.T, db *gorm.DB) Event {
	t.Helper()

	event := Event{
		Name:        "Tech Expo",
		Location:    "Hall 4",
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 1, 3),
		OrganizerID: 1,
	}
	require.NoError(t, db.Create(&event).Error)
	return event
}

func seedRegistration(t *testing.T, db *gorm.DB, eventID, exhibitorID uint, status string) Registration {
	t.Helper()

	registration := Registration{EventID: eventID, ExhibitorID: exhibitorID, Status: status}
	require.NoError(t, db.Create(&registration).Error)
	return registration
}

func TestUserDAORejectsDuplicateEmail(t *testing.T) {
	db := requireDB(t)
	userDAO := NewUserDAO(db)
	ctx := context.Background()

	email := fmt.Sprintf("dup-%d@example.com", time.Now().UnixNano())
	_, err := userDAO.Insert(ctx, User{Email: email, Password: "x", Role: "exhibitor", Name: "First"})
	require.NoError(t, err)

	_, err = userDAO.Insert(ctx, User{Email: email, Password: "x", Role: "exhibitor", Name: "Second"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestRegistrationDAORejectsDuplicateRegistration(t *testing.T) {
	db := requireDB(t)
	registrationDAO := NewRegistrationDAO(db)
	ctx := context.Background()

	event := seedEvent(t, db)

	_, err := registrationDAO.Insert(ctx, Registration{EventID: event.ID, ExhibitorID: 100, Status: "pending"})
	require.NoError(t, err)

	_, err = registrationDAO.Insert(ctx, Registration{EventID: event.ID, ExhibitorID: 100, Status: "pending"})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestReplaceStandsConflict(t *testing.T) {
	db := requireDB(t)
	registrationDAO := NewRegistrationDAO(db)
	ctx := context.Background()

	event := seedEvent(t, db)
	stand := Stand{EventID: event.ID, Number: "A-1", Type: "standard", Area: 12, BasePrice: 100, Status: StandStatusAvailable}
	require.NoError(t, db.Create(&stand).Error)

	first := seedRegistration(t, db, event.ID, 200, "approved")
	second := seedRegistration(t, db, event.ID, 201, "approved")

	require.NoError(t, registrationDAO.ReplaceStands(ctx, first.ID, event.ID, []uint{stand.ID}, false))

	err := registrationDAO.ReplaceStands(ctx, second.ID, event.ID, []uint{stand.ID}, false)
	assert.ErrorIs(t, err, ErrStandAlreadyReserved)

	// Re-selecting its own stand is not a conflict.
	require.NoError(t, registrationDAO.ReplaceStands(ctx, first.ID, event.ID, []uint{stand.ID}, true))

	// Dropping the stand releases it for the other registration.
	require.NoError(t, registrationDAO.ReplaceStands(ctx, first.ID, event.ID, nil, false))
	require.NoError(t, registrationDAO.ReplaceStands(ctx, second.ID, event.ID, []uint{stand.ID}, false))

	var reserved Stand
	require.NoError(t, db.First(&reserved, stand.ID).Error)
	assert.Equal(t, StandStatusReserved, reserved.Status)
	require.NotNil(t, reserved.RegistrationID)
	assert.Equal(t, second.ID, *reserved.RegistrationID)
}

func TestReplaceStandsRejectsForeignStand(t *testing.T) {
	db := requireDB(t)
	registrationDAO := NewRegistrationDAO(db)
	ctx := context.Background()

	event := seedEvent(t, db)
	otherEvent := seedEvent(t, db)
	stand := Stand{EventID: otherEvent.ID, Number: "Z-1", Type: "standard", Area: 9, BasePrice: 50, Status: StandStatusAvailable}
	require.NoError(t, db.Create(&stand).Error)

	registration := seedRegistration(t, db, event.ID, 300, "approved")

	err := registrationDAO.ReplaceStands(ctx, registration.ID, event.ID, []uint{stand.ID}, false)
	assert.ErrorIs(t, err, ErrStandNotInEvent)
}

func TestSumEquipmentAllocations(t *testing.T) {
	db := requireDB(t)
	eventDAO := NewEventDAO(db)
	registrationDAO := NewRegistrationDAO(db)
	ctx := context.Background()

	event := seedEvent(t, db)
	equipment := Equipment{EventID: event.ID, Name: "Spotlight", Type: "electronics", Price: 25, Unit: "piece", Stock: 10}
	require.NoError(t, db.Create(&equipment).Error)

	approved := seedRegistration(t, db, event.ID, 400, "approved")
	completed := seedRegistration(t, db, event.ID, 401, "completed")
	pending := seedRegistration(t, db, event.ID, 402, "pending")

	require.NoError(t, registrationDAO.ReplaceEquipment(ctx, approved.ID, event.ID,
		[]RegistrationEquipment{{EquipmentID: equipment.ID, Quantity: 2}}, false))
	require.NoError(t, registrationDAO.ReplaceEquipment(ctx, completed.ID, event.ID,
		[]RegistrationEquipment{{EquipmentID: equipment.ID, Quantity: 3}}, false))
	require.NoError(t, registrationDAO.ReplaceEquipment(ctx, pending.ID, event.ID,
		[]RegistrationEquipment{{EquipmentID: equipment.ID, Quantity: 4}}, false))

	// Pending registrations never count against availability.
	total, err := eventDAO.SumEquipmentAllocations(ctx, equipment.ID, event.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	// A registration's own allocation is excluded from its view.
	total, err = eventDAO.SumEquipmentAllocations(ctx, equipment.ID, event.ID, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestInvoiceDAOUniquePerRegistration(t *testing.T) {
	db := requireDB(t)
	invoiceDAO := NewInvoiceDAO(db)
	ctx := context.Background()

	event := seedEvent(t, db)
	registration := seedRegistration(t, db, event.ID, 500, "completed")

	first, err := invoiceDAO.Insert(ctx, Invoice{
		Number:         fmt.Sprintf("INV-%d", time.Now().UnixNano()),
		RegistrationID: registration.ID,
		Subtotal:       150,
		TaxRate:        0.20,
		TaxAmount:      30,
		Total:          180,
		Status:         "pending",
		IssuedAt:       time.Now(),
	})
	require.NoError(t, err)

	_, err = invoiceDAO.Insert(ctx, Invoice{
		Number:         fmt.Sprintf("INV-%d", time.Now().UnixNano()+1),
		RegistrationID: registration.ID,
		Subtotal:       150,
		TaxRate:        0.20,
		TaxAmount:      30,
		Total:          180,
		Status:         "pending",
		IssuedAt:       time.Now(),
	})
	assert.ErrorIs(t, err, ErrInvoiceExists)

	require.NoError(t, invoiceDAO.MarkPaid(ctx, first.ID, time.Now()))

	paid, err := invoiceDAO.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", paid.Status)
	assert.NotNil(t, paid.PaidAt)

	// MarkPaid applies to pending invoices only.
	assert.ErrorIs(t, invoiceDAO.MarkPaid(ctx, first.ID, time.Now()), ErrInvoiceNotFound)
}
