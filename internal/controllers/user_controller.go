package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	logrus "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vaccinecare/internal/config"
	"vaccinecare/internal/middleware"
	"vaccinecare/internal/models"
)

type adminInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// CreateAdminUser registers a platform administrator account.
func CreateAdminUser(c *gin.Context) {
	var input adminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields (name, email, password, phone_number) are required"})
		return
	}

	if emailTaken(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		PhoneNumber:  input.PhoneNumber,
		Role:         "admin",
	}
	if err := config.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		logrus.WithError(err).Error("could not create admin user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin created successfully", "data": user})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and sets the session cookie. An unknown email and
// a wrong password produce the same response to avoid account enumeration.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).Error("login: could not fetch user")
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}
	middleware.SetAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}

// Logout clears the session cookie.
func Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// CurrentUser re-derives the session from the validated token, refetching the
// user so the client always hydrates from store state rather than its cache.
func CurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}
		logrus.WithError(err).Error("could not fetch current user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// GetHospitals lists every registered hospital.
func GetHospitals(c *gin.Context) {
	var hospitals []models.Hospital
	if err := config.DB.Find(&hospitals).Error; err != nil {
		logrus.WithError(err).Error("could not list hospitals")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch hospitals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hospitals})
}

type hospitalInput struct {
	Name          string `json:"name" binding:"required"`
	Address       string `json:"address" binding:"required"`
	City          string `json:"city" binding:"required"`
	ContactNumber string `json:"contact_number" binding:"required"`
	State         string `json:"state" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password"`
}

// AddHospital creates a Hospital together with its paired login User inside
// one transaction; either both rows land or neither does.
func AddHospital(c *gin.Context) {
	var input hospitalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required."})
		return
	}

	if emailTaken(input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		return
	}

	// Hospitals created without a password get a placeholder credential that
	// must be rotated before first login.
	password := input.Password
	if password == "" {
		password = "changeme"
	}
	hashed, err := hashPassword(password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start transaction"})
		return
	}

	hospital := models.Hospital{
		Name:          input.Name,
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
	}
	if err := tx.Create(&hospital).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		logrus.WithError(err).Error("could not create hospital")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create hospital"})
		return
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		PhoneNumber:  input.ContactNumber,
		Role:         "hospital",
		HospitalID:   &hospital.ID,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		logrus.WithError(err).Error("could not create hospital login user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create hospital login"})
		return
	}

	if err := tx.Commit().Error; err != nil {
		logrus.WithError(err).Error("could not commit hospital creation")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create hospital"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Hospital added successfully", "data": hospital})
}

// SearchHospitals does a case-insensitive substring match over name and email.
func SearchHospitals(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required."})
		return
	}

	pattern := ciPattern(query)
	var hospitals []models.Hospital
	if err := config.DB.
		Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Find(&hospitals).Error; err != nil {
		logrus.WithError(err).Error("hospital search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search hospitals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": hospitals})
}

// --- shared helpers ---

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// emailTaken reports whether a login user already exists for the email.
// Racing inserts still fall through to the unique-index check.
func emailTaken(email string) bool {
	var count int64
	config.DB.Model(&models.User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func isUniqueViolation(err error) bool {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// ciPattern builds the LIKE pattern for case-insensitive substring search.
func ciPattern(query string) string {
	return "%" + strings.ToLower(query) + "%"
}
