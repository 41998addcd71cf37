package mock

import (
	"context"
	"time"

	"github.com/garnizeh/incollege/pkg/models"
	"github.com/garnizeh/incollege/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	Accounts *mockAccountRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		Accounts: &mockAccountRepo{},
	}
}

var _ repository.AccountRepo = (*mockAccountRepo)(nil)

// mockAccountRepo keeps accounts in memory. Setting one of the *Err fields
// makes the matching method fail.
type mockAccountRepo struct {
	Stored  []models.Account
	Notices []string
	lastID  int64

	CountErr  error
	GetErr    error
	CreateErr error
	FindErr   error
	DeleteErr error
}

func (m *mockAccountRepo) CreateAccount(ctx context.Context, a *models.Account, notice string) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.lastID++
	a.ID = m.lastID
	if a.Created.IsZero() {
		a.Created = time.Now().UTC()
	}
	m.Stored = append(m.Stored, *a)
	if notice != "" {
		m.Notices = append(m.Notices, notice)
	}
	return a.ID, nil
}

func (m *mockAccountRepo) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			a := m.Stored[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockAccountRepo) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	for i := range m.Stored {
		if m.Stored[i].Username == username {
			a := m.Stored[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockAccountRepo) FindAccountByName(ctx context.Context, first, last string) (*models.Account, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for i := range m.Stored {
		if m.Stored[i].FirstName == first && m.Stored[i].LastName == last {
			a := m.Stored[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (m *mockAccountRepo) FindAccounts(ctx context.Context, field repository.AccountField, value string) ([]models.Account, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var out []models.Account
	for _, a := range m.Stored {
		var v string
		switch field {
		case repository.ByLastName:
			v = a.LastName
		case repository.ByUniversity:
			v = a.University
		case repository.ByMajor:
			v = a.Major
		}
		if v == value {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAccountRepo) ListAccounts(ctx context.Context) ([]models.Account, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return append([]models.Account(nil), m.Stored...), nil
}

func (m *mockAccountRepo) CountAccounts(ctx context.Context) (int64, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return int64(len(m.Stored)), nil
}

func (m *mockAccountRepo) DeleteAccount(ctx context.Context, id int64) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i := range m.Stored {
		if m.Stored[i].ID == id {
			m.Stored = append(m.Stored[:i], m.Stored[i+1:]...)
			break
		}
	}
	return nil
}
