package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"campus-market/pkg/config"
	"campus-market/pkg/database"
	"campus-market/pkg/logger"
	"campus-market/pkg/models"
	"campus-market/pkg/s3"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, s3Client, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, s3Client *s3.Client, log *logger.Logger) error {
	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	testUsers := []struct {
		email    string
		username string
		password string
		campus   string
	}{
		{"alice@university.test", "alice", "password123", "north"},
		{"bob@university.test", "bob", "password123", "north"},
		{"charlie@university.test", "charlie", "password123", "south"},
		{"diana@university.test", "diana", "password123", "south"},
		{"eve@university.test", "eve", "password123", "north"},
	}

	userIDs := make([]string, 0, len(testUsers))

	for _, userData := range testUsers {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)

		user := &models.User{
			Email:    userData.email,
			Username: userData.username,
			Password: string(hashedPassword),
			Campus:   userData.campus,
			Role:     models.RoleStudent,
			IsActive: true,
		}

		var existingUser models.User
		result := db.Where("email = ? OR username = ?", user.Email, user.Username).First(&existingUser)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", user.Username)
			userIDs = append(userIDs, existingUser.ID)
			continue
		}

		if err := db.Create(user).Error; err != nil {
			log.Error("Failed to create user %s: %v", user.Username, err)
			continue
		}

		log.Info("Created user: %s (%s)", user.Username, user.Email)
		userIDs = append(userIDs, user.ID)

		stats := &models.UserStats{UserID: user.ID}
		if err := db.Create(stats).Error; err != nil {
			log.Error("Failed to create stats for user %s: %v", user.Username, err)
		}
	}

	if len(userIDs) == 0 {
		return fmt.Errorf("no users available for seeding")
	}

	club := &models.Club{
		OwnerID:     userIDs[0],
		Name:        "Board Game Society",
		Description: "Weekly game nights, gear swaps included",
		Campus:      "north",
	}
	var existingClub models.Club
	if db.Where("name = ?", club.Name).First(&existingClub).Error == nil {
		club = &existingClub
		log.Info("Club %s already exists, skipping", club.Name)
	} else if err := db.Create(club).Error; err != nil {
		log.Error("Failed to create club: %v", err)
	} else {
		for _, userID := range userIDs {
			member := &models.ClubMember{ClubID: club.ID, UserID: userID}
			if err := db.Create(member).Error; err != nil {
				log.Error("Failed to add member to club: %v", err)
			}
		}
		log.Info("Created club: %s", club.Name)
	}

	itemTitles := []struct {
		title    string
		price    int64
		category string
	}{
		{"Calculus textbook, 3rd edition", 2500, "books"},
		{"Desk lamp", 1200, "furniture"},
		{"Mini fridge", 8000, "appliances"},
		{"Mechanical keyboard", 4500, "electronics"},
		{"Catan board game", 3000, "games"},
	}

	for i, itemData := range itemTitles {
		sellerID := userIDs[i%len(userIDs)]

		item := &models.Item{
			SellerID:    sellerID,
			Title:       itemData.title,
			Description: "Seeded listing, lightly used",
			Price:       itemData.price,
			Category:    itemData.category,
			Campus:      testUsers[i%len(testUsers)].campus,
			Status:      models.ItemStatusActive,
		}

		var existingItem models.Item
		if db.Where("title = ? AND seller_id = ?", item.Title, sellerID).First(&existingItem).Error == nil {
			log.Info("Item %q already exists, skipping", item.Title)
			continue
		}

		if err := db.Create(item).Error; err != nil {
			log.Error("Failed to create item %q: %v", item.Title, err)
			continue
		}

		if err := attachPlaceholderImage(db, s3Client, httpClient, item, i, log); err != nil {
			log.Error("Failed to attach image to item %q: %v", item.Title, err)
		}

		log.Info("Created item: %s (%d cents)", item.Title, item.Price)
		time.Sleep(200 * time.Millisecond)
	}

	return nil
}

func attachPlaceholderImage(db *gorm.DB, s3Client *s3.Client, httpClient *http.Client, item *models.Item, index int, log *logger.Logger) error {
	imageURL := fmt.Sprintf("https://picsum.photos/seed/%d/640/480", index)

	log.Info("Fetching placeholder image from %s", imageURL)
	resp, err := httpClient.Get(imageURL)
	if err != nil {
		return fmt.Errorf("failed to fetch placeholder image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image data: %w", err)
	}
	if len(imageData) == 0 {
		return fmt.Errorf("received empty image data")
	}

	fileKey := fmt.Sprintf("items/%s/seed_%d.jpg", item.ID, index)
	uploadedURL, err := s3Client.UploadFile(fileKey, bytes.NewReader(imageData), "image/jpeg")
	if err != nil {
		return fmt.Errorf("failed to upload image to S3: %w", err)
	}

	return db.Model(item).Update("image_url", uploadedURL).Error
}
