package seed

import (
	"log"

	"github.com/SimpleYM/SimpleYM-Backend/src/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Admin struct {
	Email    string
	Password string
	Name     string
}

// Seed creates the first admin account and the yard locations when they are missing.
func Seed(db *gorm.DB, admin Admin, locations []string) {
	// Users
	if admin.Email == "" || admin.Password == "" {
		log.Println("SEED_ADMIN_EMAIL/SEED_ADMIN_PASSWORD not set, skipping admin seeding")
	} else {
		var user models.UserModel
		result := db.Where("email = ?", admin.Email).First(&user)
		if result.Error == nil {
			log.Printf("User '%s' already exists\n", admin.Email)
		} else {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Failed to hash admin password: %v\n", err)
			} else {
				newUser := models.UserModel{
					ID:       uuid.NewString(),
					Name:     admin.Name,
					Email:    admin.Email,
					Role:     string(models.RoleAdmin),
					Password: string(hashedPassword),
				}
				if err := db.Create(&newUser).Error; err != nil {
					log.Printf("Failed to create user: %v\n", err)
				} else {
					log.Printf("User '%s' created\n", admin.Email)
				}
			}
		}
	}

	// Locations
	log.Println("Checking and creating yard locations...")
	createdCount := 0
	for _, name := range locations {
		var existing models.LocationModel
		checkResult := db.Where("name = ?", name).First(&existing)
		if checkResult.Error == nil {
			continue
		}
		location := models.LocationModel{
			ID:     uuid.NewString(),
			Name:   name,
			Type:   "yard",
			Active: true,
		}
		if err := db.Create(&location).Error; err != nil {
			log.Printf("Failed to create location %s: %v\n", name, err)
		} else {
			log.Printf("Location %s created\n", name)
			createdCount++
		}
	}
	if createdCount > 0 {
		log.Printf("Finished creating %d new locations\n", createdCount)
	} else {
		log.Println("All locations already exist")
	}
}
