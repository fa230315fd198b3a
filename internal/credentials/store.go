package credentials

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"PhotoCollect/internal/models"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Store — файловое хранилище администраторов (adminUsers.json).
// Каждая запись читает/переписывает файл целиком; мьютекс сериализует
// конкурентные смены пароля, чтобы не порвать файл.
type Store struct {
	mu   sync.Mutex
	path string
}

// Open открывает хранилище. Если файла нет — создаёт дефолтного
// администратора admin/admin123. Это заведомо слабые креды для первого
// входа, о чём честно пишем в лог.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("credentials: hash default password: %w", err)
		}
		def := []models.Account{{
			Username:  "admin",
			Password:  string(hash),
			CreatedAt: time.Now(),
		}}
		if err := s.write(def); err != nil {
			return nil, fmt.Errorf("credentials: bootstrap %s: %w", path, err)
		}
		slog.Warn("credentials: created default admin account, change the password", "file", path)
	}
	return s, nil
}

// FindUser возвращает запись по имени или nil, если её нет.
func (s *Store) FindUser(username string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Verify сверяет пароль с bcrypt-хэшем. Неизвестный пользователь — false.
func (s *Store) Verify(username, password string) bool {
	acc, err := s.FindUser(username)
	if err != nil || acc == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)) == nil
}

// UpdatePassword перехэширует пароль и переписывает весь файл.
// false — если пользователя нет или запись не удалась.
func (s *Store) UpdatePassword(username, newPassword string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.read()
	if err != nil {
		slog.Error("credentials: read failed", "err", err)
		return false
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
		if err != nil {
			slog.Error("credentials: hash failed", "err", err)
			return false
		}
		now := time.Now()
		users[i].Password = string(hash)
		users[i].UpdatedAt = &now
		if err := s.write(users); err != nil {
			slog.Error("credentials: write failed", "err", err)
			return false
		}
		return true
	}
	return false
}

func (s *Store) read() ([]models.Account, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var users []models.Account
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) write(users []models.Account) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
