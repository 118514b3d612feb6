package database

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"khadamati-server/models"
	"khadamati-server/utils"
)

// demoPassword is only usable when DEMO_LOGIN_ENABLED is set
const demoPassword = "Demo1234"

func strPtr(s string) *string { return &s }

var demoUsers = map[models.UserRole]models.User{
	models.RoleCustomer: {
		Email:             "customer@demo.com",
		FullName:          "Demo Customer",
		Phone:             strPtr("+97333001234"),
		Role:              models.RoleCustomer,
		PreferredLanguage: models.LanguageEnglish,
		IsVerified:        true,
		IsActive:          true,
	},
	models.RoleProvider: {
		Email:             "ahmad@example.com",
		FullName:          "Ahmad Al-Khalifa",
		Phone:             strPtr("+97333001111"),
		Role:              models.RoleProvider,
		PreferredLanguage: models.LanguageArabic,
		IsVerified:        true,
		IsActive:          true,
	},
	models.RoleAdmin: {
		Email:             "admin@servicehub.bh",
		FullName:          "Admin User",
		Phone:             strPtr("+97317000000"),
		Role:              models.RoleAdmin,
		PreferredLanguage: models.LanguageEnglish,
		IsVerified:        true,
		IsActive:          true,
	},
}

var defaultCategories = []models.ServiceCategory{
	{NameEn: "Plumbing", NameAr: "سباكة", Icon: "wrench", SortOrder: 1, IsActive: true},
	{NameEn: "Electrical", NameAr: "كهرباء", Icon: "zap", SortOrder: 2, IsActive: true},
	{NameEn: "Cleaning", NameAr: "تنظيف", Icon: "sparkles", SortOrder: 3, IsActive: true},
	{NameEn: "Handyman", NameAr: "صيانة عامة", Icon: "hammer", SortOrder: 4, IsActive: true},
	{NameEn: "Drivers", NameAr: "سائقين", Icon: "car", SortOrder: 5, IsActive: true},
	{NameEn: "AC Services", NameAr: "تكييف", Icon: "wind", SortOrder: 6, IsActive: true},
	{NameEn: "Moving", NameAr: "نقل", Icon: "truck", SortOrder: 7, IsActive: true},
}

// SeedCategories inserts the default category set if none exist yet
func SeedCategories() error {
	var count int64
	if err := DB.Model(&models.ServiceCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := DB.Create(&defaultCategories).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded %d service categories", len(defaultCategories))
	return nil
}

// EnsureDemoUser finds or creates the fixture account for a role
func EnsureDemoUser(role models.UserRole) (*models.User, error) {
	fixture, ok := demoUsers[role]
	if !ok {
		return nil, errors.New("unknown demo role")
	}

	var user models.User
	err := DB.Where("email = ?", fixture.Email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}

	user = fixture
	user.PasswordHash = hashed
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}

	if user.Role == models.RoleProvider {
		profile := models.ProviderProfile{
			UserID:             user.ID,
			IsVerified:         true,
			VerificationStatus: models.VerificationApproved,
			IsActive:           true,
		}
		if err := DB.Create(&profile).Error; err != nil {
			log.Printf("⚠️ Failed to create demo provider profile: %v", err)
		}
	}

	log.Printf("✅ Demo user created: %s", user.Email)
	return &user, nil
}

// SeedDemoUsers creates all fixture accounts up front
func SeedDemoUsers() error {
	for role := range demoUsers {
		if _, err := EnsureDemoUser(role); err != nil {
			return err
		}
	}
	return nil
}
