package auth

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mrlokans/bookmarks/internal/config"
	"github.com/mrlokans/bookmarks/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestService_CreateUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			email:    "user@example.com",
			password: "password12345",
			wantErr:  nil,
		},
		{
			name:     "missing email",
			email:    "",
			password: "password12345",
			wantErr:  ErrEmailRequired,
		},
		{
			name:     "missing password",
			email:    "other@example.com",
			password: "",
			wantErr:  ErrPasswordRequired,
		},
		{
			name:     "password too short",
			email:    "other@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "invalid email format",
			email:    "not-an-email",
			password: "password12345",
			wantErr:  ErrEmailInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.CreateUser(tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateUser() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateUser() unexpected error: %v", err)
			}
			if user.Email != tt.email {
				t.Errorf("CreateUser() email = %q, want %q", user.Email, tt.email)
			}
			if user.PasswordHash == tt.password || user.PasswordHash == "" {
				t.Error("CreateUser() password was not hashed")
			}
		})
	}
}

func TestService_CreateUser_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10})

	if _, err := svc.CreateUser("dup@example.com", "password12345"); err != nil {
		t.Fatalf("first CreateUser() failed: %v", err)
	}

	_, err := svc.CreateUser("dup@example.com", "differentpass")
	if !errors.Is(err, ErrUserExists) {
		t.Errorf("CreateUser() error = %v, want ErrUserExists", err)
	}
}

func TestService_Authenticate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10})

	created, err := svc.CreateUser("auth@example.com", "password12345")
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate("auth@example.com", "password12345")
		if err != nil {
			t.Fatalf("Authenticate() unexpected error: %v", err)
		}
		if user.ID != created.ID {
			t.Errorf("Authenticate() ID = %d, want %d", user.ID, created.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate("auth@example.com", "wrongpassword")
		if !errors.Is(err, ErrInvalidPassword) {
			t.Errorf("Authenticate() error = %v, want ErrInvalidPassword", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Authenticate("nobody@example.com", "password12345")
		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Authenticate() error = %v, want ErrUserNotFound", err)
		}
	})
}

func TestService_Authenticate_Lockout(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{
		BcryptCost:       10,
		MaxLoginAttempts: 3,
		LockoutDuration:  time.Hour,
	})

	if _, err := svc.CreateUser("lock@example.com", "password12345"); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate("lock@example.com", "wrongpassword")
		if !errors.Is(err, ErrInvalidPassword) {
			t.Fatalf("attempt %d: error = %v, want ErrInvalidPassword", i+1, err)
		}
	}

	// Correct password is rejected while locked
	_, err := svc.Authenticate("lock@example.com", "password12345")
	if !errors.Is(err, ErrAccountLocked) {
		t.Errorf("Authenticate() error = %v, want ErrAccountLocked", err)
	}
}

func TestService_Authenticate_ResetsFailuresOnSuccess(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{
		BcryptCost:       10,
		MaxLoginAttempts: 3,
		LockoutDuration:  time.Hour,
	})

	if _, err := svc.CreateUser("reset@example.com", "password12345"); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		_, _ = svc.Authenticate("reset@example.com", "wrongpassword")
	}
	if _, err := svc.Authenticate("reset@example.com", "password12345"); err != nil {
		t.Fatalf("Authenticate() unexpected error: %v", err)
	}

	var user entities.User
	if err := db.Where("email = ?", "reset@example.com").First(&user).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if user.FailedLoginCount != 0 {
		t.Errorf("FailedLoginCount = %d, want 0", user.FailedLoginCount)
	}
	if user.LastLoginAt == nil {
		t.Error("LastLoginAt was not set")
	}
}

func TestService_Tokens(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10, TokenExpiry: time.Hour})

	user, err := svc.CreateUser("token@example.com", "password12345")
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	token, err := svc.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty token")
	}

	validated, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() failed: %v", err)
	}
	if validated.ID != user.ID {
		t.Errorf("ValidateToken() ID = %d, want %d", validated.ID, user.ID)
	}

	if _, err := svc.ValidateToken("bogus"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken(bogus) error = %v, want ErrInvalidToken", err)
	}

	if err := svc.RevokeToken(user.ID); err != nil {
		t.Fatalf("RevokeToken() failed: %v", err)
	}
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken() after revoke error = %v, want ErrInvalidToken", err)
	}
}

func TestService_TokenExpiry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, config.Auth{BcryptCost: 10, TokenExpiry: time.Millisecond})

	user, err := svc.CreateUser("expiry@example.com", "password12345")
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	token, err := svc.GenerateToken(user.ID)
	if err != nil {
		t.Fatalf("GenerateToken() failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("ValidateToken() error = %v, want ErrTokenExpired", err)
	}
}
