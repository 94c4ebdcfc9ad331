package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/resume-review-service/internal/domain"
	"github.com/spec-kit/resume-review-service/internal/repository"
)

// memUserRepo is an in-memory repository.UserRepository for tests.
type memUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*domain.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.Role = role
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) SetActive(_ context.Context, id int64, active bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	user.IsActive = active
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) List(_ context.Context, filters repository.UserListFilters) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []domain.User
	for _, user := range r.users {
		if filters.Role != nil && user.Role != *filters.Role {
			continue
		}
		if filters.Search != "" &&
			!strings.Contains(user.Username, filters.Search) &&
			!strings.Contains(user.Email, filters.Search) {
			continue
		}
		all = append(all, *user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if filters.Offset >= len(all) {
		return nil, nil
	}
	all = all[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(all) {
		all = all[:filters.Limit]
	}
	return all, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[domain.Role]int64)
	for _, user := range r.users {
		counts[user.Role]++
	}
	return counts, nil
}

type blacklistEntry struct {
	userID    int64
	expiresAt time.Time
}

// memBlacklistRepo is an in-memory repository.BlacklistRepository.
type memBlacklistRepo struct {
	mu      sync.Mutex
	entries map[string]blacklistEntry
}

func newMemBlacklistRepo() *memBlacklistRepo {
	return &memBlacklistRepo{entries: make(map[string]blacklistEntry)}
}

func (r *memBlacklistRepo) Insert(_ context.Context, tokenHash string, userID int64, expiresAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[tokenHash]; ok {
		return false, nil
	}
	r.entries[tokenHash] = blacklistEntry{userID: userID, expiresAt: expiresAt}
	return true, nil
}

func (r *memBlacklistRepo) Exists(_ context.Context, tokenHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[tokenHash]
	return ok, nil
}

func (r *memBlacklistRepo) PruneExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pruned int64
	now := time.Now()
	for hash, entry := range r.entries {
		if entry.expiresAt.Before(now) {
			delete(r.entries, hash)
			pruned++
		}
	}
	return pruned, nil
}

// memResumeRepo is an in-memory repository.ResumeRepository. Owner joins
// are resolved through the users repo when one is attached.
type memResumeRepo struct {
	mu      sync.Mutex
	resumes map[int64]*domain.Resume
	users   *memUserRepo
	nextID  int64
}

func newMemResumeRepo(users *memUserRepo) *memResumeRepo {
	return &memResumeRepo{resumes: make(map[int64]*domain.Resume), users: users, nextID: 1}
}

func (r *memResumeRepo) Create(_ context.Context, resume *domain.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume.ID = r.nextID
	r.nextID++
	resume.CreatedAt = time.Now()
	resume.UpdatedAt = resume.CreatedAt
	copied := *resume
	r.resumes[resume.ID] = &copied
	return nil
}

func (r *memResumeRepo) GetByID(_ context.Context, id int64) (*domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *resume
	return &copied, nil
}

func (r *memResumeRepo) ListByUser(_ context.Context, userID int64) ([]domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Resume
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, *resume)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memResumeRepo) ListAllWithOwner(ctx context.Context) ([]domain.ResumeWithOwner, error) {
	r.mu.Lock()
	resumes := make([]domain.Resume, 0, len(r.resumes))
	for _, resume := range r.resumes {
		resumes = append(resumes, *resume)
	}
	r.mu.Unlock()

	sort.Slice(resumes, func(i, j int) bool { return resumes[i].ID < resumes[j].ID })

	out := make([]domain.ResumeWithOwner, 0, len(resumes))
	for _, resume := range resumes {
		entry := domain.ResumeWithOwner{Resume: resume}
		if r.users != nil {
			if owner, err := r.users.GetByID(ctx, resume.UserID); err == nil {
				entry.Username = owner.Username
				entry.Email = owner.Email
				entry.GitHub = owner.GitHub
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (r *memResumeRepo) Delete(_ context.Context, id, userID int64) (*domain.Resume, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok || resume.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	delete(r.resumes, id)
	copied := *resume
	return &copied, nil
}

func (r *memResumeRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.resumes)), nil
}
