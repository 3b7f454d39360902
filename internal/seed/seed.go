// Package seed loads a small fixture dataset for local development: a
// handful of accounts, a catalog of cars across every type and fuel, and
// enough completed bookings to make the review flow exercisable.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emretknc/driveaway/internal/auth"
	"github.com/emretknc/driveaway/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

type seedUser struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	Phone           string
	IsAdmin         bool
	IsEmailVerified bool
}

var seedUsers = []seedUser{
	{"admin@carrental.com", "admin123", "Admin", "User", "+1234567890", true, true},
	{"john.doe@example.com", "password123", "John", "Doe", "+1234567891", false, true},
	{"jane.smith@example.com", "password123", "Jane", "Smith", "+1234567892", false, true},
	{"mike.johnson@example.com", "password123", "Mike", "Johnson", "+1234567893", false, true},
	{"sarah.wilson@example.com", "password123", "Sarah", "Wilson", "+1234567894", false, false},
}

var seedCars = []models.Car{
	{
		Make: "Toyota", ModelName: "Camry", Year: 2023, Type: "sedan",
		Transmission: models.TransmissionAutomatic, FuelType: models.FuelHybrid,
		Seats: 5, Doors: 4, PricePerDay: 65,
		Images:      []string{"https://images.unsplash.com/photo-1621007947382-bb3c3994e3fb?w=800"},
		Description: "A reliable and fuel-efficient sedan perfect for city driving and long trips.",
		Features:    []string{"Bluetooth", "GPS Navigation", "Backup Camera", "Cruise Control", "Heated Seats"},
		Location:    "New York, NY", IsAvailable: true, Mileage: 15000, Color: "White", LicensePlate: "NYC-001",
	},
	{
		Make: "Ford", ModelName: "Explorer", Year: 2022, Type: "suv",
		Transmission: models.TransmissionAutomatic, FuelType: models.FuelGasoline,
		Seats: 7, Doors: 5, PricePerDay: 85,
		Images:      []string{"https://images.unsplash.com/photo-1519440073355-f99c045df80c?w=800"},
		Description: "Spacious SUV ideal for families and group trips with plenty of cargo space.",
		Features:    []string{"4WD", "Third Row Seating", "Roof Rack", "Tow Package", "Apple CarPlay"},
		Location:    "Los Angeles, CA", IsAvailable: true, Mileage: 22000, Color: "Blue", LicensePlate: "CA-002",
	},
	{
		Make: "Honda", ModelName: "Civic", Year: 2024, Type: "sedan",
		Transmission: models.TransmissionManual, FuelType: models.FuelGasoline,
		Seats: 5, Doors: 4, PricePerDay: 45,
		Images:      []string{"https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?w=800"},
		Description: "Compact and efficient car perfect for urban driving with excellent fuel economy.",
		Features:    []string{"Manual Transmission", "Sunroof", "Sport Mode", "Honda Sensing", "Wireless Charging"},
		Location:    "Chicago, IL", IsAvailable: true, Mileage: 8000, Color: "Red", LicensePlate: "IL-003",
	},
	{
		Make: "BMW", ModelName: "X5", Year: 2023, Type: "luxury",
		Transmission: models.TransmissionAutomatic, FuelType: models.FuelGasoline,
		Seats: 5, Doors: 5, PricePerDay: 150,
		Images:      []string{"https://images.unsplash.com/photo-1555215695-3004980ad54e?w=800"},
		Description: "Premium luxury SUV with exceptional comfort and performance features.",
		Features:    []string{"Leather Seats", "Panoramic Sunroof", "Premium Audio", "Adaptive Cruise", "Wireless Charging"},
		Location:    "Miami, FL", IsAvailable: true, Mileage: 12000, Color: "Black", LicensePlate: "FL-004",
	},
	{
		Make: "Tesla", ModelName: "Model 3", Year: 2023, Type: "sedan",
		Transmission: models.TransmissionAutomatic, FuelType: models.FuelElectric,
		Seats: 5, Doors: 4, PricePerDay: 95,
		Images:      []string{"https://images.unsplash.com/photo-1617788138017-80ad40651399?w=800"},
		Description: "Revolutionary electric sedan with autopilot and cutting-edge technology.",
		Features:    []string{"Autopilot", "Supercharging", "Premium Connectivity", "Glass Roof", "Over-the-Air Updates"},
		Location:    "San Francisco, CA", IsAvailable: true, Mileage: 18000, Color: "Silver", LicensePlate: "CA-005",
	},
	{
		Make: "Jeep", ModelName: "Wrangler", Year: 2022, Type: "suv",
		Transmission: models.TransmissionManual, FuelType: models.FuelGasoline,
		Seats: 4, Doors: 4, PricePerDay: 75,
		Images:      []string{"https://images.unsplash.com/photo-1544636331-e26879cd4d9b?w=800"},
		Description: "Rugged off-road vehicle perfect for adventure seekers and outdoor enthusiasts.",
		Features:    []string{"4WD", "Removable Doors", "Fold-Down Windshield", "Rock Rails", "Skid Plates"},
		Location:    "Denver, CO", IsAvailable: true, Mileage: 25000, Color: "Green", LicensePlate: "CO-006",
	},
	{
		Make: "Porsche", ModelName: "911", Year: 2023, Type: "sports",
		Transmission: models.TransmissionAutomatic, FuelType: models.FuelGasoline,
		Seats: 2, Doors: 2, PricePerDay: 300,
		Images:      []string{"https://images.unsplash.com/photo-1503376780353-7e6692767b70?w=800"},
		Description: "Iconic sports car delivering unmatched performance and driving experience.",
		Features:    []string{"Sport Chrono", "PASM", "Sport Exhaust", "Ceramic Brakes", "Launch Control"},
		Location:    "Las Vegas, NV", IsAvailable: true, Mileage: 5000, Color: "Yellow", LicensePlate: "NV-007",
	},
	{
		Make: "Volkswagen", ModelName: "Golf", Year: 2022, Type: "hatchback",
		Transmission: models.TransmissionManual, FuelType: models.FuelGasoline,
		Seats: 5, Doors: 5, PricePerDay: 55,
		Images:      []string{"https://images.unsplash.com/photo-1606664515524-ed2f786a0bd6?w=800"},
		Description: "Versatile hatchback with excellent handling and practical cargo space.",
		Features:    []string{"Manual Transmission", "Hatchback Design", "Digital Cockpit", "Adaptive Headlights", "Parking Sensors"},
		Location:    "Seattle, WA", IsAvailable: false, Mileage: 28000, Color: "Gray", LicensePlate: "WA-008",
	},
}

// Run populates the database with the fixture dataset. It refuses to touch a
// database that already has users, so it is safe to invoke on every startup
// of a dev environment.
func Run(ctx context.Context, repo *models.MongodbRepo, logger *slog.Logger) error {
	usersCol, err := repo.GetCollection(ctx, models.DbName, models.UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %v", err)
	}
	count, err := usersCol.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		logger.Info("Database already seeded, skipping", "users", count)
		return nil
	}

	users, err := createUsers(ctx, repo)
	if err != nil {
		return err
	}
	logger.Info("Created users", "count", len(users))

	cars := make([]*models.Car, 0, len(seedCars))
	for i := range seedCars {
		car := seedCars[i]
		created, err := repo.CreateCar(ctx, &car)
		if err != nil {
			return fmt.Errorf("failed to seed car %s %s: %w", car.Make, car.ModelName, err)
		}
		cars = append(cars, created)
	}
	logger.Info("Created cars", "count", len(cars))

	bookings, err := createBookings(ctx, repo, users, cars)
	if err != nil {
		return err
	}
	logger.Info("Created bookings", "count", len(bookings))

	if err := createReviews(ctx, repo, users, cars, bookings); err != nil {
		return err
	}

	logger.Info("Database seeded successfully")
	logger.Info("Admin account", "email", "admin@carrental.com", "password", "admin123")
	return nil
}

func createUsers(ctx context.Context, repo *models.MongodbRepo) ([]*models.User, error) {
	users := make([]*models.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := auth.HashPassword(su.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", su.Email, err)
		}
		user, err := repo.CreateUser(ctx, &models.User{
			Email:           su.Email,
			Password:        hash,
			FirstName:       su.FirstName,
			LastName:        su.LastName,
			Phone:           su.Phone,
			IsAdmin:         su.IsAdmin,
			IsEmailVerified: su.IsEmailVerified,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", su.Email, err)
		}
		users = append(users, user)
	}
	return users, nil
}

func createBookings(ctx context.Context, repo *models.MongodbRepo, users []*models.User, cars []*models.Car) ([]*models.Booking, error) {
	type seedBooking struct {
		user, car  int
		start, end string
		total      float64
		status     models.BookingStatus
		notes      string
	}
	plan := []seedBooking{
		{1, 0, "2024-01-15", "2024-01-18", 195, models.BookingCompleted, "Great experience with the Toyota Camry!"},
		{2, 1, "2024-01-20", "2024-01-25", 425, models.BookingCompleted, "Perfect for our family vacation."},
		{3, 2, "2024-02-01", "2024-02-03", 90, models.BookingCompleted, ""},
		{1, 3, "2024-02-10", "2024-02-12", 300, models.BookingConfirmed, "Looking forward to driving this luxury SUV."},
		{4, 4, "2024-02-15", "2024-02-20", 475, models.BookingPending, "First time renting an electric car!"},
		{2, 5, "2024-03-01", "2024-03-05", 300, models.BookingConfirmed, "Planning a mountain adventure!"},
	}

	bookings := make([]*models.Booking, 0, len(plan))
	for _, sb := range plan {
		car := cars[sb.car]
		booking, err := repo.CreateBooking(ctx, &models.Booking{
			UserID:          users[sb.user].ID,
			CarID:           car.ID,
			StartDate:       mustDate(sb.start),
			EndDate:         mustDate(sb.end),
			TotalPrice:      sb.total,
			PickupLocation:  car.Location,
			DropoffLocation: car.Location,
			Notes:           sb.notes,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed booking: %w", err)
		}
		// bookings are always created pending; move the ones that should
		// already be further along
		if sb.status != models.BookingPending {
			if err := repo.SetBookingStatus(ctx, booking.ID, sb.status); err != nil {
				return nil, fmt.Errorf("failed to set booking status: %w", err)
			}
			booking.Status = sb.status
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

func createReviews(ctx context.Context, repo *models.MongodbRepo, users []*models.User, cars []*models.Car, bookings []*models.Booking) error {
	type seedReview struct {
		user, car, booking int
		rating             int
		comment            string
	}
	plan := []seedReview{
		{1, 0, 0, 5, "Excellent car! Very fuel efficient and comfortable for city driving. The hybrid system worked perfectly and the car was spotless when I picked it up."},
		{2, 1, 1, 4, "Great family SUV with plenty of space for our luggage and kids. The third row seating was very useful. Only minor complaint was the fuel consumption in city traffic."},
		{3, 2, 2, 5, "Perfect city car! The manual transmission was smooth and the car handled beautifully. Great value for money and excellent fuel economy."},
	}

	for _, sr := range plan {
		if _, err := repo.CreateReview(ctx, &models.Review{
			UserID:     users[sr.user].ID,
			CarID:      cars[sr.car].ID,
			BookingID:  bookings[sr.booking].ID,
			Rating:     sr.rating,
			Comment:    sr.comment,
			IsApproved: true,
		}); err != nil {
			return fmt.Errorf("failed to seed review: %w", err)
		}
		if err := repo.RecalculateRating(ctx, cars[sr.car].ID); err != nil {
			return fmt.Errorf("failed to recalculate rating: %w", err)
		}
	}
	return nil
}

// mustDate parses a fixture date literal. Bad literals are a programming
// error, so it panics.
func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
