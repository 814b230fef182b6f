package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/claimboard/internal/app/models"
	"github.com/yigit/claimboard/internal/pkg/apperrors"
	"github.com/yigit/claimboard/internal/pkg/events"
	"github.com/yigit/claimboard/internal/pkg/filestorage"
)

var testLogger = zerolog.Nop()

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
	err    error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1000}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == models.NormalizeEmail(user.Email) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	stored := *user
	stored.ID = r.nextID
	stored.Email = models.NormalizeEmail(user.Email)
	r.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == models.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindManyByEmails(_ context.Context, emails []string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := make(map[string]bool, len(emails))
	for _, e := range emails {
		want[models.NormalizeEmail(e)] = true
	}
	out := make([]*models.User, 0)
	for _, u := range r.sorted() {
		if want[u.Email] {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindManyByIDs(_ context.Context, ids []int64) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]*models.User, 0)
	for _, u := range r.sorted() {
		if want[u.ID] {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id int64, update models.ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Department != nil {
		u.Department = *update.Department
	}
	if update.Year != nil {
		u.Year = *update.Year
	}
	if update.RollNo != nil {
		u.RollNo = *update.RollNo
	}
	if update.GithubURL != nil {
		u.GithubURL = *update.GithubURL
	}
	if update.LinkedinURL != nil {
		u.LinkedinURL = *update.LinkedinURL
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) sorted() []*models.User {
	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeClaimRepo struct {
	mu        sync.Mutex
	claims    map[int64]*models.Claim
	nextID    int64
	createErr error
	reviewErr error
	listCalls int
}

func newFakeClaimRepo(claims ...*models.Claim) *fakeClaimRepo {
	r := &fakeClaimRepo{claims: make(map[int64]*models.Claim), nextID: 100}
	for _, c := range claims {
		r.claims[c.ID] = c
	}
	return r
}

func (r *fakeClaimRepo) Create(_ context.Context, claim *models.Claim) (*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := *claim
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.claims[stored.ID] = &stored
	cp := stored
	return &cp, nil
}

func (r *fakeClaimRepo) FindByID(_ context.Context, id int64) (*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok {
		return nil, apperrors.ErrClaimNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClaimRepo) ApplyReview(_ context.Context, id int64, review models.ClaimReview) (*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reviewErr != nil {
		return nil, r.reviewErr
	}
	c, ok := r.claims[id]
	if !ok {
		return nil, apperrors.ErrClaimNotFound
	}
	reviewer := review.ReviewerID
	at := review.ReviewedAt
	c.Status = review.Status
	c.ReviewRemarks = review.Remarks
	c.ReviewedBy = &reviewer
	c.ReviewedAt = &at
	c.UpdatedAt = at
	if len(c.MentorIDs) == 0 && review.FallbackMentorID != nil {
		c.MentorIDs = []int64{*review.FallbackMentorID}
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClaimRepo) filter(keep func(*models.Claim) bool) []*models.Claim {
	out := make([]*models.Claim, 0)
	for _, c := range r.claims {
		if keep(c) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeClaimRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.filter(func(c *models.Claim) bool { return c.StudentID == studentID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeClaimRepo) ListByStatus(_ context.Context, status models.ClaimStatus) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(c *models.Claim) bool { return c.Status == status }), nil
}

func (r *fakeClaimRepo) ListApprovedByMentor(_ context.Context, mentorID int64) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(c *models.Claim) bool {
		return c.Status == models.ClaimStatusApproved && c.HasMentor(mentorID)
	}), nil
}

func (r *fakeClaimRepo) ListApproved(_ context.Context) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	return r.filter(func(c *models.Claim) bool {
		return c.Status == models.ClaimStatusApproved && c.ReviewedAt != nil
	}), nil
}

func (r *fakeClaimRepo) ListApprovedByStudent(_ context.Context, studentID int64) ([]*models.Claim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter(func(c *models.Claim) bool {
		return c.Status == models.ClaimStatusApproved && c.StudentID == studentID
	}), nil
}

func (r *fakeClaimRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.claims)
}

// memoryStorage is an in-memory FileStorage
type memoryStorage struct {
	mu       sync.Mutex
	files    map[string][]byte
	storeErr error
	stores   int
	deleted  []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: make(map[string][]byte)}
}

func (m *memoryStorage) Store(_ context.Context, content io.Reader, mimeType, originalName string) (*filestorage.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stores++
	if m.storeErr != nil {
		return nil, m.storeErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, filestorage.ErrEmptyFile
	}
	path := "claims/" + originalName
	m.files[path] = data
	return &filestorage.FileInfo{Path: path, OriginalName: originalName, MimeType: mimeType, Size: int64(len(data))}, nil
}

func (m *memoryStorage) Open(path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStorage) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, path)
	delete(m.files, path)
	return nil
}

func (m *memoryStorage) fileCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ClaimEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event events.ClaimEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type countingCache struct {
	mu            sync.Mutex
	standings     []models.Standing
	cached        bool
	invalidations int
}

func (c *countingCache) GetStandings(context.Context) ([]models.Standing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.standings, c.cached
}

func (c *countingCache) SetStandings(_ context.Context, standings []models.Standing) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.standings = standings
	c.cached = true
}

func (c *countingCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	c.standings = nil
	c.cached = false
}

var errDatabaseDown = errors.New("database down")

func completeStudent(id int64) *models.User {
	return &models.User{
		ID:          id,
		Email:       fmt.Sprintf("student%d@somaiya.edu", id),
		Name:        "Student",
		Role:        models.RoleStudent,
		IsActive:    true,
		Department:  "Computer",
		Year:        3,
		RollNo:      "1601",
		GithubURL:   "https://github.com/s",
		LinkedinURL: "https://linkedin.com/in/s",
	}
}

func staff(id int64, email string, role models.RoleType, active bool) *models.User {
	return &models.User{ID: id, Email: email, Name: "Staff", Role: role, IsActive: active}
}

func timePtr(t time.Time) *time.Time { return &t }
